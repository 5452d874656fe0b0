package newsletter

import (
	"context"
	"io"

	"github.com/m04kA/SMC-ClinicService/internal/service/newsletter/models"
)

type NewsletterService interface {
	Subscribe(ctx context.Context, req *models.SubscribeRequest) (*models.SubscriberResponse, error)
	Unsubscribe(ctx context.Context, req *models.UnsubscribeRequest) error
	List(ctx context.Context, onlyActive bool) (*models.SubscriberListResponse, error)
	Deactivate(ctx context.Context, id int64) error
	Export(ctx context.Context, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

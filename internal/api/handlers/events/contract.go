package events

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/events/models"
)

type EventService interface {
	ListPublic(ctx context.Context, upcoming bool) (*models.EventListResponse, error)
	List(ctx context.Context, req *models.ListEventsRequest) (*models.EventListResponse, error)
	Get(ctx context.Context, idOrSlug string, includeHidden bool) (*models.EventResponse, error)
	Create(ctx context.Context, req *models.EventRequest) (*models.EventResponse, error)
	Update(ctx context.Context, id int64, req *models.EventRequest) (*models.EventResponse, error)
	Delete(ctx context.Context, id int64) error
	QRCode(ctx context.Context, idOrSlug string) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

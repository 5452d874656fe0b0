package testimonials

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/testimonials/models"
)

type TestimonialService interface {
	Submit(ctx context.Context, req *models.SubmitTestimonialRequest) (*models.TestimonialResponse, error)
	ListApproved(ctx context.Context) (*models.TestimonialListResponse, error)
	List(ctx context.Context, rawStatus *string) (*models.TestimonialListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateTestimonialRequest) (*models.TestimonialResponse, error)
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.TestimonialResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

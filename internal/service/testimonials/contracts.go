package testimonials

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// TestimonialRepository интерфейс репозитория отзывов
type TestimonialRepository interface {
	List(ctx context.Context, status *domain.TestimonialStatus) ([]*domain.Testimonial, error)
	GetByID(ctx context.Context, id int64) (*domain.Testimonial, error)
	Create(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error)
	Update(ctx context.Context, t *domain.Testimonial) (*domain.Testimonial, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TestimonialStatus) (*domain.Testimonial, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package events

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	List(ctx context.Context, filter domain.EventsFilter) ([]*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Event, error)
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Update(ctx context.Context, e *domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// QRRenderer рендерит QR код ссылки в PNG
type QRRenderer interface {
	Render(content string) ([]byte, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

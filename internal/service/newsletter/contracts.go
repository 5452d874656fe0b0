package newsletter

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// SubscriberRepository интерфейс репозитория подписчиков
type SubscriberRepository interface {
	Subscribe(ctx context.Context, sub *domain.Subscriber) (*domain.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	Deactivate(ctx context.Context, id int64) error
	List(ctx context.Context, onlyActive bool) ([]*domain.Subscriber, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package redirects

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// RedirectRepository интерфейс репозитория редиректов
type RedirectRepository interface {
	List(ctx context.Context) ([]*domain.Redirect, error)
	GetByID(ctx context.Context, id int64) (*domain.Redirect, error)
	Hit(ctx context.Context, fromPath string) (*domain.Redirect, error)
	Create(ctx context.Context, rd *domain.Redirect) (*domain.Redirect, error)
	Update(ctx context.Context, rd *domain.Redirect) (*domain.Redirect, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

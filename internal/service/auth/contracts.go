package auth

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// AdminRepository интерфейс репозитория администраторов
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
	Upsert(ctx context.Context, a *domain.AdminUser) (*domain.AdminUser, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// TokenIssuer выпускает токены доступа
type TokenIssuer interface {
	Issue(adminID int64, email string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

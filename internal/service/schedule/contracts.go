package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания, блокировок и контактов
type ScheduleRepository interface {
	ListWorkingHours(ctx context.Context) ([]*domain.WorkingHour, error)
	UpsertWorkingHour(ctx context.Context, wh *domain.WorkingHour) (*domain.WorkingHour, error)

	ListBlockedDates(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, id int64) error

	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
	SaveContactInfo(ctx context.Context, info *domain.ContactInfo) (*domain.ContactInfo, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

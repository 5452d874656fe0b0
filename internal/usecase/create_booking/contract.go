package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWorkingHour(ctx context.Context, dayOfWeek int) (*domain.WorkingHour, error)
	ListBlockedDates(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
	GetContactInfo(ctx context.Context) (*domain.ContactInfo, error)
}

// Notifier уведомления о новой заявке
type Notifier interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// MetricsRecorder бизнес-метрики бронирований
type MetricsRecorder interface {
	RecordBookingCreated(serviceName string)
	RecordSlotConflict(serviceName string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production.
// Location - часовой пояс центра; nil означает локальное время сервера.
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
)

const statsQuery = `
SELECT
	(SELECT COUNT(*) FROM bookings WHERE booking_date = $1 AND status IN ('PENDING', 'CONFIRMED', 'COMPLETED')),
	(SELECT COUNT(*) FROM bookings WHERE status = 'PENDING' AND booking_date >= $1),
	(SELECT COUNT(*) FROM sales WHERE status = 'PENDING'),
	(SELECT COUNT(*) FROM testimonials WHERE status = 'PENDING'),
	(SELECT COUNT(*) FROM newsletter_subscribers WHERE is_active),
	(SELECT COUNT(*) FROM events WHERE is_active AND status <> 'DRAFT' AND starts_at >= $1::date)`

// Repository агрегаты для главной страницы панели
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Stats считает счетчики панели относительно даты today
func (r *Repository) Stats(ctx context.Context, today time.Time) (*domain.DashboardStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var stats domain.DashboardStats
	err := executor.QueryRowContext(ctx, statsQuery, today.Format(domain.DateFormat)).Scan(
		&stats.BookingsToday,
		&stats.PendingBookings,
		&stats.PendingSales,
		&stats.PendingTestimonials,
		&stats.ActiveSubscribers,
		&stats.UpcomingEvents,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - %v", ErrExecQuery, err)
	}

	return &stats, nil
}

package dashboard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// StatsRepository агрегаты панели
type StatsRepository interface {
	Stats(ctx context.Context, today time.Time) (*domain.DashboardStats, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

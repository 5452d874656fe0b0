package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/dashboard/models"
)

// Service сервис статистики панели
type Service struct {
	repo     StatsRepository
	location *time.Location
	now      func() time.Time
	logger   Logger
}

// NewService создает новый экземпляр сервиса статистики
func NewService(repo StatsRepository, location *time.Location, logger Logger) *Service {
	return &Service{
		repo:     repo,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Stats возвращает счетчики на сегодня в часовом поясе центра
func (s *Service) Stats(ctx context.Context) (*models.StatsResponse, error) {
	today := domain.DateOnly(s.now().In(s.location))
	s.logger.Info("Stats: fetching dashboard stats for %s", today.Format(domain.DateFormat))

	stats, err := s.repo.Stats(ctx, today)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(today.Format(domain.DateFormat), stats), nil
}

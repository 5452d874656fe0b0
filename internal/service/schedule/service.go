package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

// Service сервис настроек расписания: рабочие часы, блокировки, контакты
type Service struct {
	repo      ScheduleRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListWorkingHours возвращает расписание на все 7 дней.
// Дни без строки в базе отдаются закрытыми.
func (s *Service) ListWorkingHours(ctx context.Context) (*models.WorkingHoursResponse, error) {
	s.logger.Info("ListWorkingHours: fetching weekly schedule")

	rows, err := s.repo.ListWorkingHours(ctx)
	if err != nil {
		s.logger.Error("ListWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListWorkingHours - repository error: %v", ErrInternal, err)
	}

	byDay := make(map[int]*domain.WorkingHour, len(rows))
	for _, wh := range rows {
		byDay[wh.DayOfWeek] = wh
	}

	resp := &models.WorkingHoursResponse{WorkingHours: make([]models.WorkingHourResponse, 0, 7)}
	for day := 0; day < 7; day++ {
		wh, ok := byDay[day]
		if !ok {
			wh = &domain.WorkingHour{DayOfWeek: day, OpenTime: defaultOpenTime, CloseTime: defaultCloseTime}
		}
		resp.WorkingHours = append(resp.WorkingHours, models.FromDomainWorkingHour(wh))
	}

	return resp, nil
}

// UpsertWorkingHours сохраняет расписание переданных дней одной транзакцией
func (s *Service) UpsertWorkingHours(ctx context.Context, reqs []models.WorkingHourRequest) (*models.WorkingHoursResponse, error) {
	s.logger.Info("UpsertWorkingHours: saving %d days", len(reqs))

	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: at least one day is required", ErrInvalidInput)
	}

	// 1. Валидируем все дни до записи
	rows := make([]*domain.WorkingHour, 0, len(reqs))
	seen := make(map[int]struct{}, len(reqs))
	for _, req := range reqs {
		wh, err := toWorkingHour(req)
		if err != nil {
			s.logger.Warn("UpsertWorkingHours: validation failed: %v", err)
			return nil, err
		}
		if _, dup := seen[wh.DayOfWeek]; dup {
			s.logger.Warn("UpsertWorkingHours: day %d listed twice", wh.DayOfWeek)
			return nil, fmt.Errorf("%w: day %d listed twice", ErrInvalidWorkingHours, wh.DayOfWeek)
		}
		seen[wh.DayOfWeek] = struct{}{}
		rows = append(rows, wh)
	}

	// 2. Сохраняем
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		for _, wh := range rows {
			if _, err := s.repo.UpsertWorkingHour(txCtx, wh); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpsertWorkingHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpsertWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpsertWorkingHours: successfully saved %d days", len(rows))
	return s.ListWorkingHours(ctx)
}

// ListBlockedDates возвращает блокировки в диапазоне дат (границы включительно)
func (s *Service) ListBlockedDates(ctx context.Context, from, to *time.Time) (*models.BlockedDateListResponse, error) {
	s.logger.Info("ListBlockedDates: fetching blocked dates from=%v to=%v", from, to)

	if from != nil && to != nil && to.Before(*from) {
		s.logger.Warn("ListBlockedDates: to is before from")
		return nil, fmt.Errorf("%w: 'to' must not be before 'from'", ErrInvalidInput)
	}

	blocked, err := s.repo.ListBlockedDates(ctx, from, to)
	if err != nil {
		s.logger.Error("ListBlockedDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBlockedDates - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockedDateList(blocked), nil
}

// CreateBlockedDate создает блокировку дня или интервала
func (s *Service) CreateBlockedDate(ctx context.Context, req *models.BlockedDateRequest) (*models.BlockedDateResponse, error) {
	s.logger.Info("CreateBlockedDate: blocking date=%s allDay=%t", req.Date, req.AllDay)

	bd, err := toBlockedDate(req)
	if err != nil {
		s.logger.Warn("CreateBlockedDate: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateBlockedDate(ctx, bd)
	if err != nil {
		s.logger.Error("CreateBlockedDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlockedDate: successfully created blocked date id=%d", created.ID)
	return models.FromDomainBlockedDate(created), nil
}

// DeleteBlockedDate удаляет блокировку
func (s *Service) DeleteBlockedDate(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlockedDate: deleting blocked date id=%d", id)

	if err := s.repo.DeleteBlockedDate(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrBlockedDateNotFound) {
			s.logger.Warn("DeleteBlockedDate: blocked date id=%d not found", id)
			return ErrBlockedDateNotFound
		}
		s.logger.Error("DeleteBlockedDate: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlockedDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlockedDate: successfully deleted blocked date id=%d", id)
	return nil
}

// GetContactInfo возвращает контакты. Если строки нет, отдаются пустые контакты с буфером по умолчанию.
func (s *Service) GetContactInfo(ctx context.Context) (*models.ContactInfoResponse, error) {
	s.logger.Info("GetContactInfo: fetching contact info")

	info, err := s.repo.GetContactInfo(ctx)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrContactInfoNotFound) {
			s.logger.Warn("GetContactInfo: contact info row is missing, using defaults")
			return models.FromDomainContactInfo(&domain.ContactInfo{BufferMinutes: domain.DefaultBufferMinutes}), nil
		}
		s.logger.Error("GetContactInfo: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetContactInfo - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainContactInfo(info), nil
}

// SaveContactInfo заменяет контакты и буфер между записями
func (s *Service) SaveContactInfo(ctx context.Context, req *models.ContactInfoRequest) (*models.ContactInfoResponse, error) {
	s.logger.Info("SaveContactInfo: saving contact info bufferMinutes=%d", req.BufferMinutes)

	info := req.ToDomainContactInfo()
	if err := validateContactInfo(info); err != nil {
		s.logger.Warn("SaveContactInfo: validation failed: %v", err)
		return nil, err
	}

	saved, err := s.repo.SaveContactInfo(ctx, info)
	if err != nil {
		s.logger.Error("SaveContactInfo: repository error: %v", err)
		return nil, fmt.Errorf("%w: SaveContactInfo - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SaveContactInfo: successfully saved contact info")
	return models.FromDomainContactInfo(saved), nil
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/availability"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

// UseCase use case для получения слотов на дату
type UseCase struct {
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%d, date=%s", req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга должна существовать, быть активной и не быть группой подуслуг
	service, err := uc.serviceRepo.GetServiceByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	hasChildren, err := uc.serviceRepo.HasChildren(ctx, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check sub-services of id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: failed to check sub-services: %v", ErrInternal, err)
	}
	if hasChildren {
		uc.logger.Warn("GetAvailableSlots: service id=%d has sub-services", service.ID)
		return nil, ErrServiceNotBookable
	}

	resp := &Response{
		Date:            req.Date,
		ServiceID:       service.ID,
		DurationMinutes: service.DurationMinutes,
		Slots:           []domain.Slot{},
	}

	// 3. Прошедшая дата - пустой список
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 4. Собираем входные данные движка
	input, err := loadInput(ctx, uc.scheduleRepo, uc.bookingRepo, req.Date, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load schedule for %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, err
	}
	if isSameDay(req.Date, now) {
		input.NotBefore = ptr.Ptr(minuteOfDay(now))
	}

	// 5. Рассчитываем слоты
	slots, err := availability.Compute(*input)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidTime) {
			uc.logger.Warn("GetAvailableSlots: invalid schedule data: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}
	resp.Slots = slots

	uc.logger.Info("GetAvailableSlots: generated %d slots for service=%d, date=%s",
		len(slots), service.ID, req.Date.Format(domain.DateFormat))
	return resp, nil
}

// loadInput читает расписание дня, блокировки, буфер и занятые интервалы
func loadInput(
	ctx context.Context,
	scheduleRepository ScheduleRepository,
	bookingRepository BookingRepository,
	date time.Time,
	duration int,
) (*availability.Input, error) {
	workingHour, err := scheduleRepository.GetWorkingHour(ctx, domain.Weekday(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrWorkingHourNotFound) {
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	blocked, err := scheduleRepository.ListBlockedDates(ctx, &date, &date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	buffer := domain.DefaultBufferMinutes
	contactInfo, err := scheduleRepository.GetContactInfo(ctx)
	switch {
	case err == nil:
		buffer = contactInfo.BufferMinutes
	case !errors.Is(err, scheduleRepo.ErrContactInfoNotFound):
		return nil, fmt.Errorf("%w: failed to get buffer: %v", ErrInternal, err)
	}

	bookings, err := bookingRepository.List(ctx, domain.BookingsFilter{
		StartDate:     &date,
		EndDate:       &date,
		OnlyOccupying: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return &availability.Input{
		Schedule:        availability.ScheduleFromWorkingHour(workingHour),
		Blocks:          availability.BlocksFromBlockedDates(blocked),
		BufferMinutes:   buffer,
		DurationMinutes: duration,
		Bookings:        availability.BookedFromBookings(bookings),
	}, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/availability"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/catalog"
	scheduleRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-ClinicService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/ptr"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	scheduleRepo ScheduleRepository
	notifier     Notifier
	metrics      MetricsRecorder
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	notifier Notifier,
	metrics MetricsRecorder,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		scheduleRepo: scheduleRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Слот перепроверяется движком доступности в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, date=%s, time=%s",
		req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := normalizeRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не должна быть в прошлом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Получаем услугу
	service, err := uc.getBookableService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	var (
		result   *domain.Booking
		whatsApp *string
	)

	// 4. Перепроверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		input, contactInfo, err := uc.loadInput(txCtx, req.Date, service.DurationMinutes)
		if err != nil {
			return err
		}
		if isSameDay(req.Date, now) {
			input.NotBefore = ptr.Ptr(now.Hour()*60 + now.Minute())
		}
		if contactInfo != nil {
			whatsApp = contactInfo.WhatsApp
		}

		slots, err := availability.Compute(*input)
		if err != nil {
			if errors.Is(err, availability.ErrInvalidTime) {
				uc.logger.Warn("CreateBooking: invalid schedule data: %v", err)
				return fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
			}
			uc.logger.Error("CreateBooking: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}

		slot, ok := availability.Find(slots, req.StartTime)
		if !ok || !slot.Available {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available (exists=%t)",
				req.StartTime, req.Date.Format(domain.DateFormat), ok)
			return ErrSlotNotAvailable
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			ClientPhone: req.ClientPhone,
			ServiceID:   service.ID,
			BookingDate: req.Date,
			StartTime:   slot.StartTime,
			EndTime:     slot.EndTime,
			Status:      domain.BookingStatusPending,
			ClientNotes: req.ClientNotes,
		})
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				uc.logger.Warn("CreateBooking: slot taken concurrently: %v", err)
				return ErrSlotNotAvailable
			case errors.Is(err, bookingRepo.ErrServiceNotFound):
				return ErrServiceNotFound
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		created.ServiceName = service.Name
		result = created
		return nil
	})
	if err != nil {
		// Конфликт сериализации при коммите означает, что слот занят параллельной транзакцией
		if pgerrors.IsSlotConflict(err) {
			uc.logger.Warn("CreateBooking: serialization conflict: %v", err)
			err = ErrSlotNotAvailable
		}
		if errors.Is(err, ErrSlotNotAvailable) && uc.metrics != nil {
			uc.metrics.RecordSlotConflict(service.Name)
		}
		if !isKnownError(err) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)
	if uc.metrics != nil {
		uc.metrics.RecordBookingCreated(service.Name)
	}

	// 5. Уведомления после коммита, ошибка не отменяет бронирование
	if uc.notifier != nil {
		if err := uc.notifier.BookingCreated(ctx, result); err != nil {
			uc.logger.Warn("CreateBooking: notification for booking id=%d failed: %v", result.ID, err)
		}
	}

	return &Response{
		ID:           result.ID,
		ClientName:   result.ClientName,
		ClientEmail:  result.ClientEmail,
		ClientPhone:  result.ClientPhone,
		ServiceID:    result.ServiceID,
		ServiceName:  result.ServiceName,
		BookingDate:  result.BookingDate,
		StartTime:    result.StartTime,
		EndTime:      result.EndTime,
		Status:       string(result.Status),
		ClientNotes:  result.ClientNotes,
		CreatedAt:    result.CreatedAt,
		WhatsAppLink: notifier.WhatsAppLink(ptr.Value(whatsApp), notifier.BookingWhatsAppText(result)),
	}, nil
}

// getBookableService загружает услугу и проверяет, что на нее можно записаться
func (uc *UseCase) getBookableService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	service, err := uc.serviceRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", serviceID)
		return nil, ErrServiceInactive
	}

	hasChildren, err := uc.serviceRepo.HasChildren(ctx, serviceID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to check sub-services of id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: failed to check sub-services: %v", ErrInternal, err)
	}
	if hasChildren {
		uc.logger.Warn("CreateBooking: service id=%d has sub-services", serviceID)
		return nil, ErrServiceNotBookable
	}

	return service, nil
}

// loadInput читает расписание дня, блокировки, буфер и занятые интервалы.
// Внутри транзакции бронирования дня читаются с FOR UPDATE.
func (uc *UseCase) loadInput(ctx context.Context, date time.Time, duration int) (*availability.Input, *domain.ContactInfo, error) {
	workingHour, err := uc.scheduleRepo.GetWorkingHour(ctx, domain.Weekday(date))
	if err != nil && !errors.Is(err, scheduleRepo.ErrWorkingHourNotFound) {
		if errors.Is(err, scheduleRepo.ErrSerialization) {
			return nil, nil, uc.readConflict(err)
		}
		uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	blocked, err := uc.scheduleRepo.ListBlockedDates(ctx, &date, &date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrSerialization) {
			return nil, nil, uc.readConflict(err)
		}
		uc.logger.Error("CreateBooking: failed to get blocked dates: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	buffer := domain.DefaultBufferMinutes
	contactInfo, err := uc.scheduleRepo.GetContactInfo(ctx)
	switch {
	case err == nil:
		buffer = contactInfo.BufferMinutes
	case errors.Is(err, scheduleRepo.ErrContactInfoNotFound):
		contactInfo = nil
	case errors.Is(err, scheduleRepo.ErrSerialization):
		return nil, nil, uc.readConflict(err)
	default:
		uc.logger.Error("CreateBooking: failed to get contact info: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get contact info: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		StartDate:     &date,
		EndDate:       &date,
		OnlyOccupying: true,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
			return nil, nil, uc.readConflict(err)
		}
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	return &availability.Input{
		Schedule:        availability.ScheduleFromWorkingHour(workingHour),
		Blocks:          availability.BlocksFromBlockedDates(blocked),
		BufferMinutes:   buffer,
		DurationMinutes: duration,
		Bookings:        availability.BookedFromBookings(bookings),
	}, contactInfo, nil
}

// readConflict конфликт блокировки при чтении дня: слот занимает параллельная транзакция
func (uc *UseCase) readConflict(err error) error {
	uc.logger.Warn("CreateBooking: concurrent booking while reading day: %v", err)
	return ErrSlotNotAvailable
}

func isKnownError(err error) bool {
	for _, known := range []error{
		ErrSlotNotAvailable,
		ErrServiceNotFound,
		ErrInvalidSchedule,
		ErrInternal,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

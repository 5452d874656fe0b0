package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ClinicService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями в панели администратора
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// List получает бронирования по фильтрам status/date/from/to/serviceId
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings status=%v date=%v from=%v to=%v service=%v",
		req.Status, req.Date, req.From, req.To, req.ServiceID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		if errors.Is(err, models.ErrInvalidStatus) {
			return nil, ErrInvalidStatus
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем, что диапазон корректен
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		s.logger.Warn("List: 'to' is before 'from'")
		return nil, ErrInvalidTimeRange
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update меняет статус и заметки бронирования.
// Разрешен переход между любыми статусами; пустые заметки очищают поле.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d status=%v", id, req.Status)

	var fields bookingRepo.UpdateFields

	// 1. Валидируем статус
	if req.Status != nil {
		next, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("Update: invalid status=%s for booking id=%d", *req.Status, id)
			return nil, ErrInvalidStatus
		}
		current, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			return nil, s.mapRepoError("Update", id, err)
		}
		status, err := current.Status.TransitionTo(next)
		if err != nil {
			s.logger.Warn("Update: transition %s -> %s rejected for booking id=%d", current.Status, next, id)
			return nil, ErrInvalidStatus
		}
		fields.Status = &status
	}

	// 2. Нормализуем заметки
	for _, note := range []struct {
		src *string
		dst **string
	}{{req.AdminNotes, &fields.AdminNotes}, {req.ClientNotes, &fields.ClientNotes}} {
		if note.src == nil {
			continue
		}
		trimmed := strings.TrimSpace(*note.src)
		if utf8.RuneCountInString(trimmed) > domain.MaxNotesLength {
			s.logger.Warn("Update: notes too long for booking id=%d", id)
			return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		*note.dst = &trimmed
	}

	if fields.Status == nil && fields.AdminNotes == nil && fields.ClientNotes == nil {
		s.logger.Warn("Update: nothing to update for booking id=%d", id)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	// 3. Обновляем
	updated, err := s.bookingRepo.Update(ctx, id, fields)
	if err != nil {
		return nil, s.mapRepoError("Update", id, err)
	}

	s.logger.Info("Update: successfully updated booking id=%d status=%s", id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронирование
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting booking id=%d", id)

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return s.mapRepoError("Delete", id, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) mapRepoError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("%s: booking id=%d not found", op, id)
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
		s.logger.Warn("%s: booking id=%d overlaps an active booking", op, id)
		return ErrSlotNotAvailable
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

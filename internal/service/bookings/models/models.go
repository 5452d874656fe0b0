package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Request модели

// ListBookingsRequest фильтры списка бронирований для администратора.
// Date задает один день и имеет приоритет над From/To.
type ListBookingsRequest struct {
	Status    *string
	Date      *string
	From      *string
	To        *string
	ServiceID *int64
}

// UpdateBookingRequest частичное обновление бронирования администратором
type UpdateBookingRequest struct {
	Status      *string `json:"status,omitempty"`
	AdminNotes  *string `json:"adminNotes,omitempty"`
	ClientNotes *string `json:"clientNotes,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{ServiceID: r.ServiceID}

	if r.Status != nil && *r.Status != "" {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.Date != nil && *r.Date != "" {
		date, err := parseDate(*r.Date)
		if err != nil {
			return filter, err
		}
		filter.StartDate, filter.EndDate = &date, &date
		return filter, nil
	}

	if r.From != nil && *r.From != "" {
		from, err := parseDate(*r.From)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &from
	}
	if r.To != nil && *r.To != "" {
		to, err := parseDate(*r.To)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &to
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64   `json:"id"`
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone string  `json:"clientPhone"`
	ServiceID   int64   `json:"serviceId"`
	ServiceName string  `json:"serviceName"`
	BookingDate string  `json:"bookingDate"` // "2026-03-16"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "11:00"
	Status      string  `json:"status"`
	ClientNotes *string `json:"clientNotes"`
	AdminNotes  *string `json:"adminNotes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		ClientName:  b.ClientName,
		ClientEmail: b.ClientEmail,
		ClientPhone: b.ClientPhone,
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		ClientNotes: b.ClientNotes,
		AdminNotes:  b.AdminNotes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку статуса в domain тип (регистр не важен)
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	parsed, err := domain.ParseBookingStatus(strings.ToUpper(strings.TrimSpace(status)))
	if err != nil {
		return "", ErrInvalidStatus
	}
	return parsed, nil
}

func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(domain.DateFormat, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

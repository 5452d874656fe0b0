package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// BookingStatuses all known booking statuses in display order
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
	BookingStatusNoShow,
}

// OccupyingStatuses statuses whose bookings still hold their time slot
var OccupyingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
}

// ParseBookingStatus validates a raw status value
func ParseBookingStatus(s string) (BookingStatus, error) {
	for _, status := range BookingStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: booking status %q", ErrInvalidStatus, s)
}

// TransitionTo returns the next status. Every transition between known statuses is allowed:
// the workflow is driven by staff, not enforced by the system.
func (s BookingStatus) TransitionTo(next BookingStatus) (BookingStatus, error) {
	return ParseBookingStatus(string(next))
}

// Booking represents a client appointment
type Booking struct {
	ID          int64
	ClientName  string
	ClientEmail string
	ClientPhone string
	ServiceID   int64
	ServiceName string // joined from services, read-only
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus
	ClientNotes *string
	AdminNotes  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OccupiesSlot returns true if the booking blocks its time range for other clients
func (b *Booking) OccupiesSlot() bool {
	return b.Status != BookingStatusCancelled && b.Status != BookingStatusNoShow
}

// IsFinal returns true for statuses that staff treat as closed
func (b *Booking) IsFinal() bool {
	return b.Status == BookingStatusCompleted ||
		b.Status == BookingStatusCancelled ||
		b.Status == BookingStatusNoShow
}

// BookingsFilter фильтр списка бронирований
type BookingsFilter struct {
	Status        *BookingStatus // конкретный статус (опционально)
	StartDate     *time.Time     // начало периода включительно
	EndDate       *time.Time     // конец периода включительно
	ServiceID     *int64
	OnlyOccupying bool // только бронирования, занимающие слот
}

// IsSingleDay returns true if the filter targets exactly one date
func (f BookingsFilter) IsSingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && f.StartDate.Equal(*f.EndDate)
}

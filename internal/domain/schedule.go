package domain

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// WorkingHour weekly schedule row, one per day of week (0=Sunday ... 6=Saturday)
type WorkingHour struct {
	ID         int64
	DayOfWeek  int
	OpenTime   types.TimeString
	CloseTime  types.TimeString
	BreakStart *types.TimeString
	BreakEnd   *types.TimeString
	IsOpen     bool
	UpdatedAt  time.Time
}

// HasBreak returns true if both break bounds are set
func (w *WorkingHour) HasBreak() bool {
	return w.BreakStart != nil && w.BreakEnd != nil &&
		!w.BreakStart.IsZero() && !w.BreakEnd.IsZero()
}

// BlockedDate admin-declared unavailable date or time window
type BlockedDate struct {
	ID        int64
	Date      time.Time
	Reason    *string
	AllDay    bool
	StartTime *types.TimeString // nil when AllDay
	EndTime   *types.TimeString // nil when AllDay
	CreatedAt time.Time
}

// ContactInfo business contact details plus the global buffer between appointments
type ContactInfo struct {
	Phone         *string
	Email         *string
	WhatsApp      *string
	Address       *string
	Instagram     *string
	Facebook      *string
	MapsURL       *string
	BufferMinutes int
	UpdatedAt     time.Time
}

// Weekday returns the schedule day index for a date (0=Sunday)
func Weekday(date time.Time) int {
	return int(date.Weekday())
}

// DateOnly drops the time component, keeping the location
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

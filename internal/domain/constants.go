package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MinBufferMinutes          = 0
	MaxBufferMinutes          = 240
	MinRating                 = 1
	MaxRating                 = 5
	MaxNotesLength            = 1000
	MaxNameLength             = 200
	MaxTextLength             = 5000
)

// Default values
const (
	DefaultBufferMinutes = 0
)

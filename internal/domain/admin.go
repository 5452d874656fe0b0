package domain

import "time"

// AdminUser dashboard user
type AdminUser struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}

// DashboardStats counters shown on the dashboard home
type DashboardStats struct {
	BookingsToday       int
	PendingBookings     int
	PendingSales        int
	PendingTestimonials int
	ActiveSubscribers   int
	UpcomingEvents      int
}

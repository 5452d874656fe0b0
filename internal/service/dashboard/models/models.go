package models

import "github.com/m04kA/SMC-ClinicService/internal/domain"

// StatsResponse счетчики главной страницы панели
type StatsResponse struct {
	Date                string `json:"date"`
	BookingsToday       int    `json:"bookingsToday"`
	PendingBookings     int    `json:"pendingBookings"`
	PendingSales        int    `json:"pendingSales"`
	PendingTestimonials int    `json:"pendingTestimonials"`
	ActiveSubscribers   int    `json:"activeSubscribers"`
	UpcomingEvents      int    `json:"upcomingEvents"`
}

// FromDomainStats конвертирует domain модель в DTO
func FromDomainStats(date string, s *domain.DashboardStats) *StatsResponse {
	return &StatsResponse{
		Date:                date,
		BookingsToday:       s.BookingsToday,
		PendingBookings:     s.PendingBookings,
		PendingSales:        s.PendingSales,
		PendingTestimonials: s.PendingTestimonials,
		ActiveSubscribers:   s.ActiveSubscribers,
		UpcomingEvents:      s.UpcomingEvents,
	}
}

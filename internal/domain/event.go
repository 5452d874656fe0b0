package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EventStatus lifecycle status of an event
type EventStatus string

const (
	EventStatusDraft     EventStatus = "DRAFT"
	EventStatusUpcoming  EventStatus = "UPCOMING"
	EventStatusOngoing   EventStatus = "ONGOING"
	EventStatusFinished  EventStatus = "FINISHED"
	EventStatusCancelled EventStatus = "CANCELLED"
)

// EventStatuses all known event statuses
var EventStatuses = []EventStatus{
	EventStatusDraft,
	EventStatusUpcoming,
	EventStatusOngoing,
	EventStatusFinished,
	EventStatusCancelled,
}

// ParseEventStatus validates a raw status value
func ParseEventStatus(s string) (EventStatus, error) {
	for _, status := range EventStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: event status %q", ErrInvalidStatus, s)
}

// EventLocation where the event takes place
type EventLocation string

const (
	EventLocationCentro EventLocation = "CENTRO"
	EventLocationOnline EventLocation = "ONLINE"
	EventLocationOtra   EventLocation = "OTRA"
)

// ParseEventLocation validates a raw location value
func ParseEventLocation(s string) (EventLocation, error) {
	switch EventLocation(s) {
	case EventLocationCentro, EventLocationOnline, EventLocationOtra:
		return EventLocation(s), nil
	}
	return "", fmt.Errorf("%w: event location %q", ErrInvalidStatus, s)
}

// Event workshop, retreat or course
type Event struct {
	ID               int64
	Title            string
	Slug             string
	ShortDescription *string
	Description      *string
	StartsAt         time.Time
	EndsAt           *time.Time
	Location         EventLocation
	LocationDetail   *string
	EventType        *string
	IsFree           bool
	Price            *decimal.Decimal
	MaxPlaces        *int // nil means unlimited
	AvailablePlaces  *int // decremented by staff
	HeroImage        *string
	Gallery          Images
	Includes         []string
	WhatToBring      []string
	Requirements     *string
	WhatsAppNumber   *string
	WhatsAppMessage  *string
	Status           EventStatus
	IsActive         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsPublic returns true if the event is visible on the public site
func (e *Event) IsPublic() bool {
	return e.IsActive && e.Status != EventStatusDraft
}

// IsUpcoming returns true if the event starts today or later
func (e *Event) IsUpcoming(now time.Time) bool {
	return !e.StartsAt.Before(DateOnly(now))
}

// EventsFilter фильтр списка событий
type EventsFilter struct {
	OnlyPublic bool
	Status     *EventStatus
	From       *time.Time
}

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

var (
	// ErrInvalidStatus неизвестный статус события
	ErrInvalidStatus = errors.New("invalid event status")

	// ErrInvalidLocation неизвестное место проведения
	ErrInvalidLocation = errors.New("invalid event location")
)

// ImageDTO изображение галереи
type ImageDTO struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
	Alt      string `json:"alt,omitempty"`
}

// ListEventsRequest фильтры списка событий
type ListEventsRequest struct {
	Status   *string
	Upcoming bool
}

// EventRequest запрос на создание/изменение события (PUT заменяет все поля)
type EventRequest struct {
	Title            string           `json:"title"`
	Slug             *string          `json:"slug,omitempty"`
	ShortDescription *string          `json:"shortDescription,omitempty"`
	Description      *string          `json:"description,omitempty"`
	StartsAt         time.Time        `json:"startsAt"`
	EndsAt           *time.Time       `json:"endsAt,omitempty"`
	Location         string           `json:"location"`
	LocationDetail   *string          `json:"locationDetail,omitempty"`
	EventType        *string          `json:"eventType,omitempty"`
	IsFree           bool             `json:"isFree"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	MaxPlaces        *int             `json:"maxPlaces,omitempty"`
	AvailablePlaces  *int             `json:"availablePlaces,omitempty"`
	HeroImage        *string          `json:"heroImage,omitempty"`
	Gallery          []ImageDTO       `json:"gallery"`
	Includes         []string         `json:"includes"`
	WhatToBring      []string         `json:"whatToBring"`
	Requirements     *string          `json:"requirements,omitempty"`
	WhatsAppNumber   *string          `json:"whatsappNumber,omitempty"`
	WhatsAppMessage  *string          `json:"whatsappMessage,omitempty"`
	Status           string           `json:"status"`             // пусто = DRAFT
	IsActive         *bool            `json:"isActive,omitempty"` // nil = true
}

// EventResponse ответ с данными события
type EventResponse struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	Slug             string           `json:"slug"`
	ShortDescription *string          `json:"shortDescription"`
	Description      *string          `json:"description"`
	StartsAt         time.Time        `json:"startsAt"`
	EndsAt           *time.Time       `json:"endsAt"`
	Location         string           `json:"location"`
	LocationDetail   *string          `json:"locationDetail"`
	EventType        *string          `json:"eventType"`
	IsFree           bool             `json:"isFree"`
	Price            *decimal.Decimal `json:"price"`
	MaxPlaces        *int             `json:"maxPlaces"`
	AvailablePlaces  *int             `json:"availablePlaces"`
	HeroImage        *string          `json:"heroImage"`
	Gallery          []ImageDTO       `json:"gallery"`
	Includes         []string         `json:"includes"`
	WhatToBring      []string         `json:"whatToBring"`
	Requirements     *string          `json:"requirements"`
	WhatsAppNumber   *string          `json:"whatsappNumber"`
	WhatsAppMessage  *string          `json:"whatsappMessage"`
	Status           string           `json:"status"`
	IsActive         bool             `json:"isActive"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// EventListResponse ответ со списком событий
type EventListResponse struct {
	Events []EventResponse `json:"events"`
}

// FromDomainEvent конвертирует domain модель в DTO
func FromDomainEvent(e *domain.Event) *EventResponse {
	if e == nil {
		return nil
	}

	gallery := make([]ImageDTO, 0, len(e.Gallery))
	for _, im := range e.Gallery.Sorted() {
		gallery = append(gallery, ImageDTO{URL: im.URL, Position: im.Position, Alt: im.Alt})
	}

	return &EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Slug:             e.Slug,
		ShortDescription: e.ShortDescription,
		Description:      e.Description,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		Location:         string(e.Location),
		LocationDetail:   e.LocationDetail,
		EventType:        e.EventType,
		IsFree:           e.IsFree,
		Price:            e.Price,
		MaxPlaces:        e.MaxPlaces,
		AvailablePlaces:  e.AvailablePlaces,
		HeroImage:        e.HeroImage,
		Gallery:          gallery,
		Includes:         nonNil(e.Includes),
		WhatToBring:      nonNil(e.WhatToBring),
		Requirements:     e.Requirements,
		WhatsAppNumber:   e.WhatsAppNumber,
		WhatsAppMessage:  e.WhatsAppMessage,
		Status:           string(e.Status),
		IsActive:         e.IsActive,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// FromDomainEventList конвертирует список событий
func FromDomainEventList(events []*domain.Event) *EventListResponse {
	resp := &EventListResponse{Events: make([]EventResponse, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, *FromDomainEvent(e))
	}
	return resp
}

// ToDomainEvent конвертирует запрос в domain модель (без slug)
func (r *EventRequest) ToDomainEvent() (*domain.Event, error) {
	status := domain.EventStatusDraft
	if raw := strings.TrimSpace(r.Status); raw != "" {
		parsed, err := ToDomainEventStatus(raw)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	location, err := domain.ParseEventLocation(strings.ToUpper(strings.TrimSpace(r.Location)))
	if err != nil {
		return nil, ErrInvalidLocation
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	gallery := make(domain.Images, 0, len(r.Gallery))
	for _, im := range r.Gallery {
		gallery = append(gallery, domain.Image{URL: im.URL, Position: im.Position, Alt: im.Alt})
	}

	return &domain.Event{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		StartsAt:         r.StartsAt,
		EndsAt:           r.EndsAt,
		Location:         location,
		LocationDetail:   r.LocationDetail,
		EventType:        r.EventType,
		IsFree:           r.IsFree,
		Price:            r.Price,
		MaxPlaces:        r.MaxPlaces,
		AvailablePlaces:  r.AvailablePlaces,
		HeroImage:        r.HeroImage,
		Gallery:          gallery.Sorted(),
		Includes:         r.Includes,
		WhatToBring:      r.WhatToBring,
		Requirements:     r.Requirements,
		WhatsAppNumber:   r.WhatsAppNumber,
		WhatsAppMessage:  r.WhatsAppMessage,
		Status:           status,
		IsActive:         isActive,
	}, nil
}

// ToDomainEventStatus разбирает статус без учета регистра
func ToDomainEventStatus(raw string) (domain.EventStatus, error) {
	status, err := domain.ParseEventStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// SubscribeRequest запрос на подписку
type SubscribeRequest struct {
	Email  string  `json:"email"`
	Name   *string `json:"name,omitempty"`
	Source string  `json:"source,omitempty"` // пусто = footer
}

// UnsubscribeRequest запрос на отписку
type UnsubscribeRequest struct {
	Email string `json:"email"`
}

// SubscriberResponse ответ с данными подписчика
type SubscriberResponse struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	Name           *string    `json:"name"`
	Source         string     `json:"source"`
	SourceLabel    string     `json:"sourceLabel"`
	IsActive       bool       `json:"isActive"`
	SubscribedAt   time.Time  `json:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt"`
}

// SubscriberListResponse ответ со списком подписчиков
type SubscriberListResponse struct {
	Subscribers []SubscriberResponse `json:"subscribers"`
}

// FromDomainSubscriber конвертирует domain модель в DTO
func FromDomainSubscriber(s *domain.Subscriber) *SubscriberResponse {
	if s == nil {
		return nil
	}

	return &SubscriberResponse{
		ID:             s.ID,
		Email:          s.Email,
		Name:           s.Name,
		Source:         string(s.Source),
		SourceLabel:    s.Source.Label(),
		IsActive:       s.IsActive,
		SubscribedAt:   s.SubscribedAt,
		UnsubscribedAt: s.UnsubscribedAt,
	}
}

// FromDomainSubscriberList конвертирует список подписчиков
func FromDomainSubscriberList(subscribers []*domain.Subscriber) *SubscriberListResponse {
	resp := &SubscriberListResponse{Subscribers: make([]SubscriberResponse, 0, len(subscribers))}
	for _, s := range subscribers {
		resp.Subscribers = append(resp.Subscribers, *FromDomainSubscriber(s))
	}
	return resp
}

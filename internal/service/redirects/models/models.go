package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// RedirectRequest запрос на создание/изменение редиректа
type RedirectRequest struct {
	FromPath   string `json:"fromPath"`
	ToPath     string `json:"toPath"`
	StatusCode int    `json:"statusCode"`         // 0 = 301
	IsActive   *bool  `json:"isActive,omitempty"` // nil = true
}

// RedirectResponse ответ с данными редиректа
type RedirectResponse struct {
	ID         int64      `json:"id"`
	FromPath   string     `json:"fromPath"`
	ToPath     string     `json:"toPath"`
	StatusCode int        `json:"statusCode"`
	IsActive   bool       `json:"isActive"`
	Hits       int64      `json:"hits"`
	LastHitAt  *time.Time `json:"lastHitAt"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// RedirectListResponse ответ со списком редиректов
type RedirectListResponse struct {
	Redirects []RedirectResponse `json:"redirects"`
}

// Target куда перенаправить клиента
type Target struct {
	Location   string
	StatusCode int
}

// FromDomainRedirect конвертирует domain модель в DTO
func FromDomainRedirect(rd *domain.Redirect) *RedirectResponse {
	if rd == nil {
		return nil
	}

	return &RedirectResponse{
		ID:         rd.ID,
		FromPath:   rd.FromPath,
		ToPath:     rd.ToPath,
		StatusCode: rd.StatusCode,
		IsActive:   rd.IsActive,
		Hits:       rd.Hits,
		LastHitAt:  rd.LastHitAt,
		CreatedAt:  rd.CreatedAt,
		UpdatedAt:  rd.UpdatedAt,
	}
}

// FromDomainRedirectList конвертирует список редиректов
func FromDomainRedirectList(items []*domain.Redirect) *RedirectListResponse {
	resp := &RedirectListResponse{Redirects: make([]RedirectResponse, 0, len(items))}
	for _, rd := range items {
		resp.Redirects = append(resp.Redirects, *FromDomainRedirect(rd))
	}
	return resp
}

// ToDomainRedirect конвертирует запрос в domain модель
func (r *RedirectRequest) ToDomainRedirect() *domain.Redirect {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &domain.Redirect{
		FromPath:   r.FromPath,
		ToPath:     r.ToPath,
		StatusCode: r.StatusCode,
		IsActive:   isActive,
	}
}

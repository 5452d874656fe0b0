package models

import (
	"errors"
	"strings"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ErrInvalidStatus неизвестный статус отзыва
var ErrInvalidStatus = errors.New("invalid testimonial status")

// SubmitTestimonialRequest отзыв, оставленный клиентом на сайте
type SubmitTestimonialRequest struct {
	ClientName   string  `json:"clientName"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	Text         string  `json:"text"`
	Rating       int     `json:"rating"`
	ServiceLabel *string `json:"serviceLabel,omitempty"`
}

// UpdateTestimonialRequest полное изменение отзыва администратором
type UpdateTestimonialRequest struct {
	ClientName   string  `json:"clientName"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	Text         string  `json:"text"`
	Rating       int     `json:"rating"`
	ServiceLabel *string `json:"serviceLabel,omitempty"`
	Status       *string `json:"status,omitempty"`
	DisplayOrder int     `json:"displayOrder"`
}

// UpdateStatusRequest запрос на смену статуса модерации
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TestimonialResponse ответ с данными отзыва
type TestimonialResponse struct {
	ID           int64     `json:"id"`
	ClientName   string    `json:"clientName"`
	ClientEmail  *string   `json:"clientEmail,omitempty"`
	Text         string    `json:"text"`
	Rating       int       `json:"rating"`
	ServiceLabel *string   `json:"serviceLabel"`
	Status       string    `json:"status"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TestimonialListResponse ответ со списком отзывов
type TestimonialListResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
}

// FromDomainTestimonial конвертирует domain модель в DTO
func FromDomainTestimonial(t *domain.Testimonial) *TestimonialResponse {
	if t == nil {
		return nil
	}

	return &TestimonialResponse{
		ID:           t.ID,
		ClientName:   t.ClientName,
		ClientEmail:  t.ClientEmail,
		Text:         t.Text,
		Rating:       t.Rating,
		ServiceLabel: t.ServiceLabel,
		Status:       string(t.Status),
		DisplayOrder: t.DisplayOrder,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// FromDomainTestimonialList конвертирует список отзывов.
// В публичном ответе email клиента не отдается.
func FromDomainTestimonialList(items []*domain.Testimonial, public bool) *TestimonialListResponse {
	resp := &TestimonialListResponse{Testimonials: make([]TestimonialResponse, 0, len(items))}
	for _, t := range items {
		item := *FromDomainTestimonial(t)
		if public {
			item.ClientEmail = nil
		}
		resp.Testimonials = append(resp.Testimonials, item)
	}
	return resp
}

// ToDomainTestimonialStatus разбирает статус без учета регистра
func ToDomainTestimonialStatus(raw string) (domain.TestimonialStatus, error) {
	status, err := domain.ParseTestimonialStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if err != nil {
		return "", ErrInvalidStatus
	}
	return status, nil
}

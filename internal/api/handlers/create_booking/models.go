package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	createBooking "github.com/m04kA/SMC-ClinicService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ClinicService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone string  `json:"clientPhone"`
	ServiceID   int64   `json:"serviceId"`
	Date        string  `json:"date"`      // "2026-03-16"
	StartTime   string  `json:"startTime"` // "10:00"
	ClientNotes *string `json:"clientNotes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID           int64   `json:"id"`
	ClientName   string  `json:"clientName"`
	ClientEmail  string  `json:"clientEmail"`
	ClientPhone  string  `json:"clientPhone"`
	ServiceID    int64   `json:"serviceId"`
	ServiceName  string  `json:"serviceName"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	ClientNotes  *string `json:"clientNotes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	WhatsAppLink *string `json:"whatsappLink,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Формат времени проверяет use case.
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		ServiceID:   r.ServiceID,
		Date:        bookingDate,
		StartTime:   types.TimeString(r.StartTime),
		ClientNotes: r.ClientNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:          resp.ID,
		ClientName:  resp.ClientName,
		ClientEmail: resp.ClientEmail,
		ClientPhone: resp.ClientPhone,
		ServiceID:   resp.ServiceID,
		ServiceName: resp.ServiceName,
		Date:        resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      resp.Status,
		ClientNotes: resp.ClientNotes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.WhatsAppLink != "" {
		link := resp.WhatsAppLink
		out.WhatsAppLink = &link
	}
	return out
}

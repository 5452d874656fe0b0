package contact

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	contactService "github.com/m04kA/SMC-ClinicService/internal/service/contact"
	"github.com/m04kA/SMC-ClinicService/internal/service/contact/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "заполните имя, корректный email и сообщение"
	msgDeliveryFailed     = "не удалось отправить сообщение, попробуйте позже"
)

type Handler struct {
	service ContactService
	logger  Logger
}

func NewHandler(service ContactService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/contact
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /contact - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Send(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, contactService.ErrInvalidInput):
			h.logger.Warn("POST /contact - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, contactService.ErrDeliveryFailed):
			h.logger.Error("POST /contact - Delivery failed: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgDeliveryFailed)

		default:
			h.logger.Error("POST /contact - Failed to send message: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /contact - Message sent: subscribed=%t", result.Subscribed)
	handlers.RespondJSON(w, http.StatusOK, result)
}

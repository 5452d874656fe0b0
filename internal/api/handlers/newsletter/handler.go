package newsletter

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	newsletterService "github.com/m04kA/SMC-ClinicService/internal/service/newsletter"
	"github.com/m04kA/SMC-ClinicService/internal/service/newsletter/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidParams       = "некорректные параметры запроса"
	msgInvalidSubscriberID = "некорректный ID подписчика"
	msgInvalidEmail        = "некорректный email"
	msgInvalidInput        = "некорректные данные подписки"
	msgNotFound            = "подписчик не найден"

	exportFilename = "suscriptores.csv"
)

type Handler struct {
	service NewsletterService
	logger  Logger
}

func NewHandler(service NewsletterService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Subscribe POST /api/newsletter
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req models.SubscribeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /newsletter - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Subscribe(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /newsletter", err)
		return
	}

	h.logger.Info("POST /newsletter - Subscribed: subscriber_id=%d, source=%s", result.ID, result.Source)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Unsubscribe POST /api/newsletter/unsubscribe
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req models.UnsubscribeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /newsletter/unsubscribe - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Unsubscribe(r.Context(), &req); err != nil {
		h.respondError(w, "POST /newsletter/unsubscribe", err)
		return
	}

	handlers.RespondNoContent(w)
}

// List GET /api/newsletter?active=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	active, err := handlers.QueryBool(r, "active")
	if err != nil {
		h.logger.Warn("GET /newsletter - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), active != nil && *active)
	if err != nil {
		h.respondError(w, "GET /newsletter", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/newsletter/{id}
// Подписчик не удаляется, а деактивируется
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /newsletter/{id} - Invalid subscriber ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubscriberID)
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /newsletter/{id}", err)
		return
	}

	h.logger.Info("DELETE /newsletter/{id} - Subscriber deactivated: subscriber_id=%d", id)
	handlers.RespondNoContent(w)
}

// Export GET /api/newsletter/export
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), &buf); err != nil {
		h.respondError(w, "GET /newsletter/export", err)
		return
	}

	h.logger.Info("GET /newsletter/export - Export ready: bytes=%d", buf.Len())
	handlers.RespondFile(w, "text/csv; charset=utf-8", exportFilename, buf.Bytes())
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, newsletterService.ErrSubscriberNotFound):
		h.logger.Warn("%s - Subscriber not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, newsletterService.ErrInvalidEmail):
		h.logger.Warn("%s - Invalid email", route)
		handlers.RespondBadRequest(w, msgInvalidEmail)

	case errors.Is(err, newsletterService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

package events

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	eventsService "github.com/m04kA/SMC-ClinicService/internal/service/events"
	"github.com/m04kA/SMC-ClinicService/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidParams      = "некорректные параметры запроса"
	msgInvalidEventID     = "некорректный ID события"
	msgEventNotFound      = "событие не найдено"
	msgSlugTaken          = "такой slug уже используется"
	msgInvalidInput       = "некорректные данные события"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/events?upcoming=&all=&status=
// Без all=true от администратора отдаются только опубликованные активные события
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	upcoming, err := handlers.QueryBool(r, "upcoming")
	if err != nil {
		h.logger.Warn("GET /events - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	all, err := handlers.QueryBool(r, "all")
	if err != nil {
		h.logger.Warn("GET /events - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	var result *models.EventListResponse
	if all != nil && *all && middleware.IsAdmin(r.Context()) {
		result, err = h.service.List(r.Context(), &models.ListEventsRequest{
			Status:   handlers.QueryString(r, "status"),
			Upcoming: upcoming != nil && *upcoming,
		})
	} else {
		result, err = h.service.ListPublic(r.Context(), upcoming != nil && *upcoming)
	}
	if err != nil {
		h.respondError(w, "GET /events", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/events/{idOrSlug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	result, err := h.service.Get(r.Context(), idOrSlug, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.respondError(w, "GET /events/{idOrSlug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/events
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /events", err)
		return
	}

	h.logger.Info("POST /events - Event created successfully: event_id=%d, slug=%s", result.ID, result.Slug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/events/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "idOrSlug")
	if err != nil {
		h.logger.Warn("PUT /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req models.EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /events/{id}", err)
		return
	}

	h.logger.Info("PUT /events/{id} - Event updated successfully: event_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/events/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "idOrSlug")
	if err != nil {
		h.logger.Warn("DELETE /events/{id} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /events/{id}", err)
		return
	}

	h.logger.Info("DELETE /events/{id} - Event deleted successfully: event_id=%d", id)
	handlers.RespondNoContent(w)
}

// QRCode GET /api/events/{idOrSlug}/qr
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	png, err := h.service.QRCode(r.Context(), idOrSlug)
	if err != nil {
		h.respondError(w, "GET /events/{idOrSlug}/qr", err)
		return
	}

	handlers.RespondFile(w, "image/png", fmt.Sprintf("evento-%s-qr.png", idOrSlug), png)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, eventsService.ErrEventNotFound):
		h.logger.Warn("%s - Event not found: %v", route, err)
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, eventsService.ErrSlugTaken):
		h.logger.Warn("%s - Slug taken: %v", route, err)
		handlers.RespondConflict(w, msgSlugTaken)

	case errors.Is(err, eventsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

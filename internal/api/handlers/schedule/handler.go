package schedule

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	scheduleService "github.com/m04kA/SMC-ClinicService/internal/service/schedule"
	"github.com/m04kA/SMC-ClinicService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidBlockedID    = "некорректный ID блокировки"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidWorkingHours = "некорректное расписание"
	msgInvalidTimeRange    = "некорректный интервал блокировки"
	msgInvalidInput        = "некорректные входные данные"
	msgBlockedNotFound     = "блокировка не найдена"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListWorkingHours GET /api/working-hours
func (h *Handler) ListWorkingHours(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListWorkingHours(r.Context())
	if err != nil {
		h.respondError(w, "GET /working-hours", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpsertWorkingHours POST /api/working-hours
func (h *Handler) UpsertWorkingHours(w http.ResponseWriter, r *http.Request) {
	var req []models.WorkingHourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertWorkingHours(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /working-hours", err)
		return
	}

	h.logger.Info("POST /working-hours - Working hours saved: days=%d", len(req))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// ListBlockedDates GET /api/blocked-dates?from=&to=
func (h *Handler) ListBlockedDates(w http.ResponseWriter, r *http.Request) {
	from, err := queryDate(r, "from")
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		h.logger.Warn("GET /blocked-dates - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListBlockedDates(r.Context(), from, to)
	if err != nil {
		h.respondError(w, "GET /blocked-dates", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateBlockedDate POST /api/blocked-dates
func (h *Handler) CreateBlockedDate(w http.ResponseWriter, r *http.Request) {
	var req models.BlockedDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBlockedDate(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /blocked-dates", err)
		return
	}

	h.logger.Info("POST /blocked-dates - Blocked date created: id=%d, date=%s", result.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeleteBlockedDate DELETE /api/blocked-dates/{id}
func (h *Handler) DeleteBlockedDate(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /blocked-dates/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockedID)
		return
	}

	if err := h.service.DeleteBlockedDate(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /blocked-dates/{id}", err)
		return
	}

	h.logger.Info("DELETE /blocked-dates/{id} - Blocked date deleted: id=%d", id)
	handlers.RespondNoContent(w)
}

// GetContactInfo GET /api/contact-info
func (h *Handler) GetContactInfo(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetContactInfo(r.Context())
	if err != nil {
		h.respondError(w, "GET /contact-info", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SaveContactInfo PUT /api/contact-info
func (h *Handler) SaveContactInfo(w http.ResponseWriter, r *http.Request) {
	var req models.ContactInfoRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /contact-info - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SaveContactInfo(r.Context(), &req)
	if err != nil {
		h.respondError(w, "PUT /contact-info", err)
		return
	}

	h.logger.Info("PUT /contact-info - Contact info saved: bufferMinutes=%d", result.BufferMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, scheduleService.ErrBlockedDateNotFound):
		h.logger.Warn("%s - Blocked date not found: %v", route, err)
		handlers.RespondNotFound(w, msgBlockedNotFound)

	case errors.Is(err, scheduleService.ErrInvalidWorkingHours):
		h.logger.Warn("%s - Invalid working hours: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidWorkingHours)

	case errors.Is(err, scheduleService.ErrInvalidTimeRange):
		h.logger.Warn("%s - Invalid time range: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTimeRange)

	case errors.Is(err, scheduleService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := handlers.QueryString(r, name)
	if raw == nil {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q", name, *raw)
	}
	return &date, nil
}

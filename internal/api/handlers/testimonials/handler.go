package testimonials

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	testimonialsService "github.com/m04kA/SMC-ClinicService/internal/service/testimonials"
	"github.com/m04kA/SMC-ClinicService/internal/service/testimonials/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidParams        = "некорректные параметры запроса"
	msgInvalidTestimonialID = "некорректный ID отзыва"
	msgNotFound             = "отзыв не найден"
	msgInvalidStatus        = "некорректный статус отзыва"
	msgInvalidInput         = "некорректные данные отзыва"
)

type Handler struct {
	service TestimonialService
	logger  Logger
}

func NewHandler(service TestimonialService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Submit POST /api/testimonials
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitTestimonialRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /testimonials - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /testimonials", err)
		return
	}

	h.logger.Info("POST /testimonials - Testimonial submitted: testimonial_id=%d, rating=%d", result.ID, result.Rating)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/testimonials?all=&status=
// Публично отдаются только одобренные отзывы
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := handlers.QueryBool(r, "all")
	if err != nil {
		h.logger.Warn("GET /testimonials - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	var result *models.TestimonialListResponse
	if all != nil && *all && middleware.IsAdmin(r.Context()) {
		result, err = h.service.List(r.Context(), handlers.QueryString(r, "status"))
	} else {
		result, err = h.service.ListApproved(r.Context())
	}
	if err != nil {
		h.respondError(w, "GET /testimonials", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/testimonials/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /testimonials/{id} - Invalid testimonial ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTestimonialID)
		return
	}

	var req models.UpdateTestimonialRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /testimonials/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /testimonials/{id}", err)
		return
	}

	h.logger.Info("PUT /testimonials/{id} - Testimonial updated: testimonial_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateStatus PATCH /api/testimonials/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /testimonials/{id}/status - Invalid testimonial ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTestimonialID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /testimonials/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PATCH /testimonials/{id}/status", err)
		return
	}

	h.logger.Info("PATCH /testimonials/{id}/status - Status changed: testimonial_id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/testimonials/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /testimonials/{id} - Invalid testimonial ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTestimonialID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /testimonials/{id}", err)
		return
	}

	h.logger.Info("DELETE /testimonials/{id} - Testimonial deleted: testimonial_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, testimonialsService.ErrTestimonialNotFound):
		h.logger.Warn("%s - Testimonial not found: %v", route, err)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, testimonialsService.ErrInvalidStatus):
		h.logger.Warn("%s - Invalid status: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, testimonialsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

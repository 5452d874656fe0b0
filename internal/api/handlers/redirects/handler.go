package redirects

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	redirectsService "github.com/m04kA/SMC-ClinicService/internal/service/redirects"
	"github.com/m04kA/SMC-ClinicService/internal/service/redirects/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRedirectID  = "некорректный ID редиректа"
	msgRedirectNotFound   = "редирект не найден"
	msgPathTaken          = "редирект для этого пути уже существует"
	msgInvalidInput       = "некорректные данные редиректа"
	msgPageNotFound       = "страница не найдена"
)

type Handler struct {
	service RedirectService
	logger  Logger
}

func NewHandler(service RedirectService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Resolve обрабатывает все незарегистрированные пути.
// Найденный активный редирект отдается как 301/302, иначе 404.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		handlers.RespondNotFound(w, msgPageNotFound)
		return
	}

	target, err := h.service.Resolve(r.Context(), r.URL.Path)
	if err != nil {
		if !errors.Is(err, redirectsService.ErrRedirectNotFound) {
			h.logger.Error("GET %s - Failed to resolve redirect: %v", r.URL.Path, err)
		}
		handlers.RespondNotFound(w, msgPageNotFound)
		return
	}

	http.Redirect(w, r, target.Location, target.StatusCode)
}

// List GET /api/redirects
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "GET /redirects", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/redirects/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /redirects/{id} - Invalid redirect ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRedirectID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /redirects/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/redirects
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.RedirectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /redirects - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /redirects", err)
		return
	}

	h.logger.Info("POST /redirects - Redirect created: redirect_id=%d, from=%s", result.ID, result.FromPath)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/redirects/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /redirects/{id} - Invalid redirect ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRedirectID)
		return
	}

	var req models.RedirectRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /redirects/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /redirects/{id}", err)
		return
	}

	h.logger.Info("PUT /redirects/{id} - Redirect updated: redirect_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/redirects/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /redirects/{id} - Invalid redirect ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRedirectID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /redirects/{id}", err)
		return
	}

	h.logger.Info("DELETE /redirects/{id} - Redirect deleted: redirect_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, redirectsService.ErrRedirectNotFound):
		h.logger.Warn("%s - Redirect not found: %v", route, err)
		handlers.RespondNotFound(w, msgRedirectNotFound)

	case errors.Is(err, redirectsService.ErrPathTaken):
		h.logger.Warn("%s - Path taken: %v", route, err)
		handlers.RespondConflict(w, msgPathTaken)

	case errors.Is(err, redirectsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

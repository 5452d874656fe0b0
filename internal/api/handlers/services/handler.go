package services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidParams       = "некорректные параметры запроса"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidCategoryID   = "некорректный ID категории"
	msgServiceNotFound     = "услуга не найдена"
	msgCategoryNotFound    = "категория не найдена"
	msgServiceHasChildren  = "у услуги есть подуслуги, сначала удалите их"
	msgServiceInUse        = "на услугу есть бронирования"
	msgCategoryHasServices = "в категории есть услуги"
	msgSlugTaken           = "такой slug уже используется"
	msgInvalidParent       = "некорректная родительская услуга"
	msgInvalidInput        = "некорректные данные услуги"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/services?all=&tree=
// all=true учитывается только для администратора
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	all, err := handlers.QueryBool(r, "all")
	if err != nil {
		h.logger.Warn("GET /services - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	tree, err := handlers.QueryBool(r, "tree")
	if err != nil {
		h.logger.Warn("GET /services - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	includeInactive := all != nil && *all && middleware.IsAdmin(r.Context())
	result, err := h.service.List(r.Context(), includeInactive, tree != nil && *tree)
	if err != nil {
		h.respondError(w, "GET /services", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/services/{idOrSlug}
// Неактивная услуга видна только администратору
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	value := mux.Vars(r)["id"]

	var (
		result *models.ServiceResponse
		err    error
	)
	if id, parseErr := strconv.ParseInt(value, 10, 64); parseErr == nil {
		result, err = h.service.GetByID(r.Context(), id)
		if err == nil && !result.IsActive && !middleware.IsAdmin(r.Context()) {
			err = catalog.ErrServiceNotFound
		}
	} else {
		result, err = h.service.GetBySlug(r.Context(), value)
	}
	if err != nil {
		h.respondError(w, "GET /services/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /services", err)
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%d, slug=%s", result.ID, result.Slug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PATCH /api/services/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PATCH /services/{id}", err)
		return
	}

	h.logger.Info("PATCH /services/{id} - Service updated successfully: service_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Toggle PATCH /api/services/{id}/toggle
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /services/{id}/toggle - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	result, err := h.service.Toggle(r.Context(), id)
	if err != nil {
		h.respondError(w, "PATCH /services/{id}/toggle", err)
		return
	}

	h.logger.Info("PATCH /services/{id}/toggle - Service toggled: service_id=%d, active=%t", id, result.IsActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Reorder PUT /api/services/reorder
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var items []models.ReorderItem
	if err := handlers.DecodeJSON(r, &items); err != nil {
		h.logger.Warn("PUT /services/reorder - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Reorder(r.Context(), items); err != nil {
		h.respondError(w, "PUT /services/reorder", err)
		return
	}

	h.logger.Info("PUT /services/reorder - Services reordered: count=%d", len(items))
	handlers.RespondNoContent(w)
}

// Delete DELETE /api/services/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /services/{id}", err)
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted successfully: service_id=%d", id)
	handlers.RespondNoContent(w)
}

// ListCategories GET /api/service-categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, "GET /service-categories", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateCategory POST /api/service-categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-categories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /service-categories", err)
		return
	}

	h.logger.Info("POST /service-categories - Category created: category_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateCategory PUT /api/service-categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /service-categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-categories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /service-categories/{id}", err)
		return
	}

	h.logger.Info("PUT /service-categories/{id} - Category updated: category_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteCategory DELETE /api/service-categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /service-categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /service-categories/{id}", err)
		return
	}

	h.logger.Info("DELETE /service-categories/{id} - Category deleted: category_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		h.logger.Warn("%s - Service not found: %v", route, err)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found: %v", route, err)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, catalog.ErrServiceHasChildren):
		h.logger.Warn("%s - Service has children: %v", route, err)
		handlers.RespondConflict(w, msgServiceHasChildren)

	case errors.Is(err, catalog.ErrServiceInUse):
		h.logger.Warn("%s - Service in use: %v", route, err)
		handlers.RespondConflict(w, msgServiceInUse)

	case errors.Is(err, catalog.ErrCategoryHasServices):
		h.logger.Warn("%s - Category has services: %v", route, err)
		handlers.RespondConflict(w, msgCategoryHasServices)

	case errors.Is(err, catalog.ErrSlugTaken):
		h.logger.Warn("%s - Slug taken: %v", route, err)
		handlers.RespondConflict(w, msgSlugTaken)

	case errors.Is(err, catalog.ErrInvalidParent):
		h.logger.Warn("%s - Invalid parent: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidParent)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

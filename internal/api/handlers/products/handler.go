package products

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	"github.com/m04kA/SMC-ClinicService/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicService/internal/domain"
	productsService "github.com/m04kA/SMC-ClinicService/internal/service/products"
	"github.com/m04kA/SMC-ClinicService/internal/service/products/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidParams       = "некорректные параметры запроса"
	msgInvalidProductID    = "некорректный ID товара"
	msgInvalidCategoryID   = "некорректный ID категории"
	msgProductNotFound     = "товар не найден"
	msgProductInUse        = "по товару есть продажи"
	msgCategoryNotFound    = "категория не найдена"
	msgCategoryHasProducts = "в категории есть товары"
	msgSlugTaken           = "такой slug уже используется"
	msgInvalidInput        = "некорректные данные товара"
)

type Handler struct {
	service ProductService
	logger  Logger
}

func NewHandler(service ProductService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/products?categoryId=&featured=&all=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.QueryInt64(r, "categoryId")
	if err != nil {
		h.logger.Warn("GET /products - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	featured, err := handlers.QueryBool(r, "featured")
	if err != nil {
		h.logger.Warn("GET /products - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	all, err := handlers.QueryBool(r, "all")
	if err != nil {
		h.logger.Warn("GET /products - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	filter := domain.ProductsFilter{
		CategoryID:      categoryID,
		Featured:        featured,
		IncludeInactive: all != nil && *all && middleware.IsAdmin(r.Context()),
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.respondError(w, "GET /products", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/products/{idOrSlug}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := mux.Vars(r)["idOrSlug"]

	result, err := h.service.Get(r.Context(), idOrSlug, middleware.IsAdmin(r.Context()))
	if err != nil {
		h.respondError(w, "GET /products/{idOrSlug}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/products
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /products - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /products", err)
		return
	}

	h.logger.Info("POST /products - Product created successfully: product_id=%d, slug=%s", result.ID, result.Slug)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/products/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "idOrSlug")
	if err != nil {
		h.logger.Warn("PUT /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	var req models.ProductRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /products/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /products/{id}", err)
		return
	}

	h.logger.Info("PUT /products/{id} - Product updated successfully: product_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/products/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "idOrSlug")
	if err != nil {
		h.logger.Warn("DELETE /products/{id} - Invalid product ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProductID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /products/{id}", err)
		return
	}

	h.logger.Info("DELETE /products/{id} - Product deleted successfully: product_id=%d", id)
	handlers.RespondNoContent(w)
}

// ListCategories GET /api/product-categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, "GET /product-categories", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// GetCategory GET /api/product-categories/{id}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /product-categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	result, err := h.service.GetCategory(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /product-categories/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// CreateCategory POST /api/product-categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /product-categories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /product-categories", err)
		return
	}

	h.logger.Info("POST /product-categories - Category created: category_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateCategory PUT /api/product-categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /product-categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /product-categories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCategory(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /product-categories/{id}", err)
		return
	}

	h.logger.Info("PUT /product-categories/{id} - Category updated: category_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// DeleteCategory DELETE /api/product-categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /product-categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /product-categories/{id}", err)
		return
	}

	h.logger.Info("DELETE /product-categories/{id} - Category deleted: category_id=%d", id)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, productsService.ErrProductNotFound):
		h.logger.Warn("%s - Product not found: %v", route, err)
		handlers.RespondNotFound(w, msgProductNotFound)

	case errors.Is(err, productsService.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found: %v", route, err)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, productsService.ErrProductInUse):
		h.logger.Warn("%s - Product in use: %v", route, err)
		handlers.RespondConflict(w, msgProductInUse)

	case errors.Is(err, productsService.ErrCategoryHasProducts):
		h.logger.Warn("%s - Category has products: %v", route, err)
		handlers.RespondConflict(w, msgCategoryHasProducts)

	case errors.Is(err, productsService.ErrSlugTaken):
		h.logger.Warn("%s - Slug taken: %v", route, err)
		handlers.RespondConflict(w, msgSlugTaken)

	case errors.Is(err, productsService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

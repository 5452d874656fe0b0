package sales

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ClinicService/internal/api/handlers"
	salesService "github.com/m04kA/SMC-ClinicService/internal/service/sales"
	"github.com/m04kA/SMC-ClinicService/internal/service/sales/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSaleID      = "некорректный ID продажи"
	msgSaleNotFound       = "продажа не найдена"
	msgProductNotFound    = "товар не найден"
	msgOutOfStock         = "товара нет в наличии"
	msgInvalidStatus      = "некорректный статус продажи"
	msgInvalidInput       = "некорректные данные продажи"
)

type Handler struct {
	service SaleService
	logger  Logger
}

func NewHandler(service SaleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/sales
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sales - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /sales", err)
		return
	}

	h.logger.Info("POST /sales - Sale created successfully: sale_id=%d, product_id=%d", result.ID, result.ProductID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// List GET /api/sales?status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context(), handlers.QueryString(r, "status"))
	if err != nil {
		h.respondError(w, "GET /sales", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Get GET /api/sales/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /sales/{id} - Invalid sale ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSaleID)
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET /sales/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Update PUT /api/sales/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /sales/{id} - Invalid sale ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSaleID)
		return
	}

	var req models.UpdateSaleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sales/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT /sales/{id}", err)
		return
	}

	h.logger.Info("PUT /sales/{id} - Sale updated successfully: sale_id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/sales/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /sales/{id} - Invalid sale ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSaleID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.respondError(w, "DELETE /sales/{id}", err)
		return
	}

	h.logger.Info("DELETE /sales/{id} - Sale deleted successfully: sale_id=%d", id)
	handlers.RespondNoContent(w)
}

// Receipt GET /api/sales/{id}/receipt
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("GET /sales/{id}/receipt - Invalid sale ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSaleID)
		return
	}

	// PDF собирается в буфер, чтобы ошибка рендера не оборвала ответ на середине
	var buf bytes.Buffer
	if err := h.service.Receipt(r.Context(), id, &buf); err != nil {
		h.respondError(w, "GET /sales/{id}/receipt", err)
		return
	}

	h.logger.Info("GET /sales/{id}/receipt - Receipt rendered: sale_id=%d, bytes=%d", id, buf.Len())
	handlers.RespondFile(w, "application/pdf", fmt.Sprintf("recibo-%d.pdf", id), buf.Bytes())
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, salesService.ErrSaleNotFound):
		h.logger.Warn("%s - Sale not found: %v", route, err)
		handlers.RespondNotFound(w, msgSaleNotFound)

	case errors.Is(err, salesService.ErrProductNotFound):
		h.logger.Warn("%s - Product not found: %v", route, err)
		handlers.RespondNotFound(w, msgProductNotFound)

	case errors.Is(err, salesService.ErrOutOfStock):
		h.logger.Warn("%s - Out of stock: %v", route, err)
		handlers.RespondConflict(w, msgOutOfStock)

	case errors.Is(err, salesService.ErrInvalidStatus):
		h.logger.Warn("%s - Invalid status: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, salesService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}

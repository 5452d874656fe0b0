package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// CreateSaleRequest публичная заявка на покупку товара
type CreateSaleRequest struct {
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	ProductID       int64   `json:"productId"`
	ClientNotes     *string `json:"clientNotes,omitempty"`
	NewsletterOptIn bool    `json:"newsletterOptIn"`
}

// UpdateSaleRequest изменение продажи администратором; clearFinalPrice возвращает цену каталога
type UpdateSaleRequest struct {
	Status          *string          `json:"status,omitempty"`
	FinalPrice      *decimal.Decimal `json:"finalPrice,omitempty"`
	ClearFinalPrice bool             `json:"clearFinalPrice,omitempty"`
	AdminNotes      *string          `json:"adminNotes,omitempty"`
}

// SaleResponse ответ с данными продажи
type SaleResponse struct {
	ID              int64            `json:"id"`
	ClientName      string           `json:"clientName"`
	ClientEmail     string           `json:"clientEmail"`
	ClientPhone     string           `json:"clientPhone"`
	ProductID       int64            `json:"productId"`
	ProductName     string           `json:"productName"`
	ProductPrice    decimal.Decimal  `json:"productPrice"`
	FinalPrice      *decimal.Decimal `json:"finalPrice"`
	EffectivePrice  decimal.Decimal  `json:"effectivePrice"`
	Status          string           `json:"status"`
	NewsletterOptIn bool             `json:"newsletterOptIn"`
	ClientNotes     *string          `json:"clientNotes"`
	AdminNotes      *string          `json:"adminNotes"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// SaleListResponse ответ со списком продаж
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
}

// FromDomainSale конвертирует domain модель в DTO
func FromDomainSale(s *domain.Sale) *SaleResponse {
	if s == nil {
		return nil
	}

	return &SaleResponse{
		ID:              s.ID,
		ClientName:      s.ClientName,
		ClientEmail:     s.ClientEmail,
		ClientPhone:     s.ClientPhone,
		ProductID:       s.ProductID,
		ProductName:     s.ProductName,
		ProductPrice:    s.ProductPrice,
		FinalPrice:      s.FinalPrice,
		EffectivePrice:  s.EffectivePrice(),
		Status:          string(s.Status),
		NewsletterOptIn: s.NewsletterOptIn,
		ClientNotes:     s.ClientNotes,
		AdminNotes:      s.AdminNotes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSaleList конвертирует список продаж
func FromDomainSaleList(sales []*domain.Sale) *SaleListResponse {
	resp := &SaleListResponse{Sales: make([]SaleResponse, 0, len(sales))}
	for _, s := range sales {
		resp.Sales = append(resp.Sales, *FromDomainSale(s))
	}
	return resp
}

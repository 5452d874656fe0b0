package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product item sold in the shop
type Product struct {
	ID              int64
	Name            string
	Slug            string
	Description     *string
	Price           decimal.Decimal
	CategoryID      *int64
	CategoryName    *string // joined, read-only
	Images          Images
	TrackStock      bool
	Stock           *int
	IsActive        bool
	IsFeatured      bool
	DisplayOrder    int
	MetaTitle       *string
	MetaDescription *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InStock returns true if the product can be sold right now
func (p *Product) InStock() bool {
	if !p.TrackStock || p.Stock == nil {
		return true
	}
	return *p.Stock > 0
}

// ProductCategory groups products
type ProductCategory struct {
	ID           int64
	Name         string
	Slug         string
	Description  *string
	DisplayOrder int
	CreatedAt    time.Time
}

// ProductsFilter фильтр списка товаров
type ProductsFilter struct {
	CategoryID      *int64
	Featured        *bool
	IncludeInactive bool
}

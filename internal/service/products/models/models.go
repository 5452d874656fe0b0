package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ImageDTO изображение товара
type ImageDTO struct {
	URL      string `json:"url"`
	Position int    `json:"position"`
	Alt      string `json:"alt,omitempty"`
}

// ProductRequest запрос на создание/изменение товара (PUT заменяет все поля)
type ProductRequest struct {
	Name            string          `json:"name"`
	Slug            *string         `json:"slug,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	CategoryID      *int64          `json:"categoryId,omitempty"`
	Images          []ImageDTO      `json:"images"`
	TrackStock      bool            `json:"trackStock"`
	Stock           *int            `json:"stock,omitempty"`
	IsActive        *bool           `json:"isActive,omitempty"` // nil = true
	IsFeatured      bool            `json:"isFeatured"`
	DisplayOrder    int             `json:"displayOrder"`
	MetaTitle       *string         `json:"metaTitle,omitempty"`
	MetaDescription *string         `json:"metaDescription,omitempty"`
}

// CategoryRequest запрос на создание/изменение категории товаров
type CategoryRequest struct {
	Name         string  `json:"name"`
	Slug         *string `json:"slug,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"displayOrder"`
}

// ProductResponse ответ с данными товара
type ProductResponse struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Slug            string          `json:"slug"`
	Description     *string         `json:"description"`
	Price           decimal.Decimal `json:"price"`
	CategoryID      *int64          `json:"categoryId"`
	CategoryName    *string         `json:"categoryName"`
	Images          []ImageDTO      `json:"images"`
	TrackStock      bool            `json:"trackStock"`
	Stock           *int            `json:"stock"`
	InStock         bool            `json:"inStock"`
	IsActive        bool            `json:"isActive"`
	IsFeatured      bool            `json:"isFeatured"`
	DisplayOrder    int             `json:"displayOrder"`
	MetaTitle       *string         `json:"metaTitle"`
	MetaDescription *string         `json:"metaDescription"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProductListResponse ответ со списком товаров
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
}

// CategoryResponse ответ с данными категории товаров
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CategoryListResponse ответ со списком категорий товаров
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// FromDomainProduct конвертирует domain модель в DTO, изображения по position
func FromDomainProduct(p *domain.Product) *ProductResponse {
	if p == nil {
		return nil
	}

	images := make([]ImageDTO, 0, len(p.Images))
	for _, im := range p.Images.Sorted() {
		images = append(images, ImageDTO{URL: im.URL, Position: im.Position, Alt: im.Alt})
	}

	return &ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		Price:           p.Price,
		CategoryID:      p.CategoryID,
		CategoryName:    p.CategoryName,
		Images:          images,
		TrackStock:      p.TrackStock,
		Stock:           p.Stock,
		InStock:         p.InStock(),
		IsActive:        p.IsActive,
		IsFeatured:      p.IsFeatured,
		DisplayOrder:    p.DisplayOrder,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainProductList конвертирует список товаров
func FromDomainProductList(products []*domain.Product) *ProductListResponse {
	resp := &ProductListResponse{Products: make([]ProductResponse, 0, len(products))}
	for _, p := range products {
		resp.Products = append(resp.Products, *FromDomainProduct(p))
	}
	return resp
}

// FromDomainCategory конвертирует domain модель в DTO
func FromDomainCategory(c *domain.ProductCategory) *CategoryResponse {
	if c == nil {
		return nil
	}

	return &CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
	}
}

// FromDomainCategoryList конвертирует список категорий
func FromDomainCategoryList(categories []*domain.ProductCategory) *CategoryListResponse {
	resp := &CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, *FromDomainCategory(c))
	}
	return resp
}

// ToDomainProduct конвертирует запрос в domain модель (без slug)
func (r *ProductRequest) ToDomainProduct() *domain.Product {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	images := make(domain.Images, 0, len(r.Images))
	for _, im := range r.Images {
		images = append(images, domain.Image{URL: im.URL, Position: im.Position, Alt: im.Alt})
	}

	return &domain.Product{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		CategoryID:      r.CategoryID,
		Images:          images.Sorted(),
		TrackStock:      r.TrackStock,
		Stock:           r.Stock,
		IsActive:        isActive,
		IsFeatured:      r.IsFeatured,
		DisplayOrder:    r.DisplayOrder,
		MetaTitle:       r.MetaTitle,
		MetaDescription: r.MetaDescription,
	}
}

// ToDomainCategory конвертирует запрос в domain модель
func (r *CategoryRequest) ToDomainCategory() *domain.ProductCategory {
	return &domain.ProductCategory{
		Name:         r.Name,
		Description:  r.Description,
		DisplayOrder: r.DisplayOrder,
	}
}

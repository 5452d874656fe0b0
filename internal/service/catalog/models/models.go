package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги.
// IsSubService=false всегда обнуляет ParentServiceID.
type CreateServiceRequest struct {
	Name            string           `json:"name"`
	Slug            *string          `json:"slug,omitempty"` // nil = из названия
	Description     *string          `json:"description,omitempty"`
	DurationMinutes int              `json:"durationMinutes"`
	Price           *decimal.Decimal `json:"price,omitempty"` // nil = цена по запросу
	ImageURL        *string          `json:"imageUrl,omitempty"`
	CategoryID      *int64           `json:"categoryId,omitempty"`
	IsSubService    bool             `json:"isSubService"`
	ParentServiceID *int64           `json:"parentServiceId,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"` // nil = true
	DisplayOrder    int              `json:"displayOrder"`
}

// UpdateServiceRequest частичное обновление услуги, обновляются только переданные поля
type UpdateServiceRequest struct {
	Name            *string          `json:"name,omitempty"`
	Slug            *string          `json:"slug,omitempty"`
	Description     *string          `json:"description,omitempty"`
	DurationMinutes *int             `json:"durationMinutes,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	ClearPrice      bool             `json:"clearPrice,omitempty"`
	ImageURL        *string          `json:"imageUrl,omitempty"`
	CategoryID      *int64           `json:"categoryId,omitempty"`
	IsSubService    *bool            `json:"isSubService,omitempty"`
	ParentServiceID *int64           `json:"parentServiceId,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
	DisplayOrder    *int             `json:"displayOrder,omitempty"`
}

// ReorderItem новая позиция услуги после drag-and-drop
type ReorderItem struct {
	ID              int64  `json:"id"`
	DisplayOrder    int    `json:"displayOrder"`
	ParentServiceID *int64 `json:"parentServiceId"`
}

// CategoryRequest запрос на создание/изменение категории
type CategoryRequest struct {
	Name         string  `json:"name"`
	Slug         *string `json:"slug,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"displayOrder"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              int64             `json:"id"`
	Name            string            `json:"name"`
	Slug            string            `json:"slug"`
	Description     *string           `json:"description"`
	DurationMinutes int               `json:"durationMinutes"`
	Price           *decimal.Decimal  `json:"price"`
	ImageURL        *string           `json:"imageUrl"`
	CategoryID      *int64            `json:"categoryId"`
	ParentServiceID *int64            `json:"parentServiceId"`
	IsSubService    bool              `json:"isSubService"`
	IsActive        bool              `json:"isActive"`
	DisplayOrder    int               `json:"displayOrder"`
	Children        []ServiceResponse `json:"children,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// CategoryResponse ответ с данными категории
type CategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CategoryListResponse ответ со списком категорий
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// Методы конвертации

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Slug:            s.Slug,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		ImageURL:        s.ImageURL,
		CategoryID:      s.CategoryID,
		ParentServiceID: s.ParentServiceID,
		IsSubService:    s.IsSubService(),
		IsActive:        s.IsActive,
		DisplayOrder:    s.DisplayOrder,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList плоский список в порядке отображения
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromServiceTree корневые услуги с вложенными подуслугами
func FromServiceTree(tree *domain.ServiceTree) *ServiceListResponse {
	roots := tree.Roots()
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(roots))}
	for _, root := range roots {
		item := *FromDomainService(root)
		for _, child := range tree.Children(root.ID) {
			item.Children = append(item.Children, *FromDomainService(child))
		}
		resp.Services = append(resp.Services, item)
	}
	return resp
}

// FromDomainCategory конвертирует domain модель в DTO
func FromDomainCategory(c *domain.ServiceCategory) *CategoryResponse {
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
func FromDomainCategoryList(categories []*domain.ServiceCategory) *CategoryListResponse {
	resp := &CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, *FromDomainCategory(c))
	}
	return resp
}

// ToDomainService конвертирует запрос в domain модель (без slug и проверок родителя)
func (r *CreateServiceRequest) ToDomainService() *domain.Service {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	s := &domain.Service{
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		ImageURL:        r.ImageURL,
		CategoryID:      r.CategoryID,
		IsActive:        isActive,
		DisplayOrder:    r.DisplayOrder,
	}
	if r.IsSubService {
		s.ParentServiceID = r.ParentServiceID
	}
	return s
}

// ApplyToService применяет переданные поля к услуге.
// isSubService=false обнуляет родителя, parentServiceId без флага считается переносом под родителя.
func (r *UpdateServiceRequest) ApplyToService(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = r.Description
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.ClearPrice {
		s.Price = nil
	} else if r.Price != nil {
		s.Price = r.Price
	}
	if r.ImageURL != nil {
		s.ImageURL = r.ImageURL
	}
	if r.CategoryID != nil {
		s.CategoryID = r.CategoryID
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
	if r.DisplayOrder != nil {
		s.DisplayOrder = *r.DisplayOrder
	}

	switch {
	case r.IsSubService != nil && !*r.IsSubService:
		s.ParentServiceID = nil
	case r.ParentServiceID != nil:
		s.ParentServiceID = r.ParentServiceID
	}
}

// ToDomainCategory конвертирует запрос в domain модель
func (r *CategoryRequest) ToDomainCategory() *domain.ServiceCategory {
	return &domain.ServiceCategory{
		Name:         r.Name,
		Description:  r.Description,
		DisplayOrder: r.DisplayOrder,
	}
}

// ToDomainOrder конвертирует элемент сортировки
func (r ReorderItem) ToDomainOrder() domain.ServiceOrder {
	return domain.ServiceOrder{
		ID:              r.ID,
		DisplayOrder:    r.DisplayOrder,
		ParentServiceID: r.ParentServiceID,
	}
}

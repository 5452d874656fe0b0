package services

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, includeInactive, tree bool) (*models.ServiceListResponse, error)
	GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error)
	GetBySlug(ctx context.Context, value string) (*models.ServiceResponse, error)
	Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error)
	Toggle(ctx context.Context, id int64) (*models.ServiceResponse, error)
	Reorder(ctx context.Context, items []models.ReorderItem) error
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) (*models.CategoryListResponse, error)
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

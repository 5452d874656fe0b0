package products

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/service/products/models"
)

type ProductService interface {
	List(ctx context.Context, filter domain.ProductsFilter) (*models.ProductListResponse, error)
	Get(ctx context.Context, idOrSlug string, includeInactive bool) (*models.ProductResponse, error)
	Create(ctx context.Context, req *models.ProductRequest) (*models.ProductResponse, error)
	Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.ProductResponse, error)
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) (*models.CategoryListResponse, error)
	GetCategory(ctx context.Context, id int64) (*models.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

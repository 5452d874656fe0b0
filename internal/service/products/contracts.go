package products

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// ProductRepository интерфейс репозитория товаров и категорий товаров
type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductsFilter) ([]*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]*domain.ProductCategory, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.ProductCategory, error)
	CreateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error)
	UpdateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Cache кэш публичных ответов магазина
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

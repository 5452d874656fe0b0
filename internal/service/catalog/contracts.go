package catalog

import (
	"context"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и категорий услуг
type CatalogRepository interface {
	ListServices(ctx context.Context, includeInactive bool) ([]*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error)
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	ToggleService(ctx context.Context, id int64) (*domain.Service, error)
	UpdateServiceOrder(ctx context.Context, order domain.ServiceOrder) error
	DeleteService(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error)
	GetCategoryByID(ctx context.Context, id int64) (*domain.ServiceCategory, error)
	CreateCategory(ctx context.Context, c *domain.ServiceCategory) (*domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, c *domain.ServiceCategory) (*domain.ServiceCategory, error)
	DeleteCategory(ctx context.Context, id int64) error
}

// Cache кэш публичных ответов каталога
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

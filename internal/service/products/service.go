package products

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/internal/infra/cache"
	productRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/product"
	"github.com/m04kA/SMC-ClinicService/internal/service/products/models"
	"github.com/m04kA/SMC-ClinicService/pkg/slug"
)

const (
	productsCachePrefix   = "products"
	categoriesCachePrefix = "product-categories"
)

// Service сервис магазина: товары и категории товаров
type Service struct {
	repo   ProductRepository
	cache  Cache
	logger Logger
}

// NewService создает новый экземпляр сервиса товаров
func NewService(repo ProductRepository, cache Cache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List возвращает товары по фильтру; публичный вариант кэшируется
func (s *Service) List(ctx context.Context, filter domain.ProductsFilter) (*models.ProductListResponse, error) {
	s.logger.Info("List: fetching products categoryId=%v featured=%v includeInactive=%t",
		filter.CategoryID, filter.Featured, filter.IncludeInactive)

	params := map[string]string{}
	if filter.CategoryID != nil {
		params["categoryId"] = strconv.FormatInt(*filter.CategoryID, 10)
	}
	if filter.Featured != nil {
		params["featured"] = strconv.FormatBool(*filter.Featured)
	}
	key := cache.Key(productsCachePrefix, params)

	if !filter.IncludeInactive {
		var cached models.ProductListResponse
		if found, err := s.cache.Get(ctx, key, &cached); err != nil {
			s.logger.Warn("List: cache read failed: %v", err)
		} else if found {
			return &cached, nil
		}
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainProductList(products)
	if !filter.IncludeInactive {
		if err := s.cache.Set(ctx, key, resp); err != nil {
			s.logger.Warn("List: cache write failed: %v", err)
		}
	}

	s.logger.Info("List: successfully fetched %d products", len(products))
	return resp, nil
}

// Get получает товар по числовому ID или slug.
// Неактивный товар виден только при includeInactive.
func (s *Service) Get(ctx context.Context, idOrSlug string, includeInactive bool) (*models.ProductResponse, error) {
	s.logger.Info("Get: fetching product %s", idOrSlug)

	var (
		product *domain.Product
		err     error
	)
	if id, parseErr := strconv.ParseInt(idOrSlug, 10, 64); parseErr == nil {
		product, err = s.repo.GetByID(ctx, id)
	} else {
		product, err = s.repo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, s.mapProductError("Get", err)
	}
	if !product.IsActive && !includeInactive {
		s.logger.Warn("Get: product %s is inactive", idOrSlug)
		return nil, ErrProductNotFound
	}

	return models.FromDomainProduct(product), nil
}

// Create создает товар
func (s *Service) Create(ctx context.Context, req *models.ProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Create: creating product name=%q", req.Name)

	product := req.ToDomainProduct()
	if err := prepareProduct(product, req.Slug); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, s.mapProductError("Create", err)
	}

	s.invalidate(ctx, productsCachePrefix)
	s.logger.Info("Create: successfully created product id=%d", created.ID)
	return models.FromDomainProduct(created), nil
}

// Update заменяет поля товара
func (s *Service) Update(ctx context.Context, id int64, req *models.ProductRequest) (*models.ProductResponse, error) {
	s.logger.Info("Update: updating product id=%d", id)

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapProductError("Update", err)
	}

	product := req.ToDomainProduct()
	product.ID = id
	product.CreatedAt = existing.CreatedAt
	slugValue := req.Slug
	if slugValue == nil {
		slugValue = &existing.Slug
	}
	if err := prepareProduct(product, slugValue); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.Update(ctx, product)
	if err != nil {
		return nil, s.mapProductError("Update", err)
	}

	s.invalidate(ctx, productsCachePrefix)
	s.logger.Info("Update: successfully updated product id=%d", id)
	return models.FromDomainProduct(updated), nil
}

// Delete удаляет товар
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting product id=%d", id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapProductError("Delete", err)
	}

	s.invalidate(ctx, productsCachePrefix)
	s.logger.Info("Delete: successfully deleted product id=%d", id)
	return nil
}

// ListCategories возвращает категории товаров
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	s.logger.Info("ListCategories: fetching product categories")

	var cached models.CategoryListResponse
	if found, err := s.cache.Get(ctx, categoriesCachePrefix, &cached); err != nil {
		s.logger.Warn("ListCategories: cache read failed: %v", err)
	} else if found {
		return &cached, nil
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainCategoryList(categories)
	if err := s.cache.Set(ctx, categoriesCachePrefix, resp); err != nil {
		s.logger.Warn("ListCategories: cache write failed: %v", err)
	}
	return resp, nil
}

// GetCategory получает категорию товаров по ID
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.CategoryResponse, error) {
	s.logger.Info("GetCategory: fetching category id=%d", id)

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, s.mapProductError("GetCategory", err)
	}
	return models.FromDomainCategory(category), nil
}

// CreateCategory создает категорию товаров
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	s.logger.Info("CreateCategory: creating category name=%q", req.Name)

	category := req.ToDomainCategory()
	name, slugValue, err := normalizeNameAndSlug(category.Name, req.Slug)
	if err != nil {
		s.logger.Warn("CreateCategory: validation failed: %v", err)
		return nil, err
	}
	category.Name, category.Slug = name, slugValue

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, s.mapProductError("CreateCategory", err)
	}

	s.invalidate(ctx, categoriesCachePrefix)
	s.logger.Info("CreateCategory: successfully created category id=%d", created.ID)
	return models.FromDomainCategory(created), nil
}

// UpdateCategory заменяет поля категории товаров
func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	s.logger.Info("UpdateCategory: updating category id=%d", id)

	existing, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, s.mapProductError("UpdateCategory", err)
	}

	category := req.ToDomainCategory()
	category.ID = id
	category.CreatedAt = existing.CreatedAt
	requested := req.Slug
	if requested == nil {
		requested = &existing.Slug
	}
	name, slugValue, err := normalizeNameAndSlug(category.Name, requested)
	if err != nil {
		s.logger.Warn("UpdateCategory: validation failed: %v", err)
		return nil, err
	}
	category.Name, category.Slug = name, slugValue

	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, s.mapProductError("UpdateCategory", err)
	}

	s.invalidate(ctx, categoriesCachePrefix)
	// Список товаров содержит categoryName
	s.invalidate(ctx, productsCachePrefix)
	s.logger.Info("UpdateCategory: successfully updated category id=%d", id)
	return models.FromDomainCategory(updated), nil
}

// DeleteCategory удаляет категорию; категория с товарами не удаляется
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCategory: deleting category id=%d", id)

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return s.mapProductError("DeleteCategory", err)
	}

	s.invalidate(ctx, categoriesCachePrefix)
	s.logger.Info("DeleteCategory: successfully deleted category id=%d", id)
	return nil
}

// Вспомогательные методы

// prepareProduct нормализует товар и проверяет правила цены и остатков
func prepareProduct(product *domain.Product, requestedSlug *string) error {
	name, slugValue, err := normalizeNameAndSlug(product.Name, requestedSlug)
	if err != nil {
		return err
	}
	product.Name, product.Slug = name, slugValue

	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if !product.TrackStock {
		product.Stock = nil
	} else if product.Stock != nil && *product.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidInput)
	}

	for _, im := range product.Images {
		if strings.TrimSpace(im.URL) == "" {
			return fmt.Errorf("%w: image url is required", ErrInvalidInput)
		}
	}
	return nil
}

func normalizeNameAndSlug(name string, requestedSlug *string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > domain.MaxNameLength {
		return "", "", fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	source := name
	if requestedSlug != nil && strings.TrimSpace(*requestedSlug) != "" {
		source = *requestedSlug
	}
	value := slug.Make(source)
	if value == "" {
		return "", "", fmt.Errorf("%w: slug cannot be derived from name", ErrInvalidInput)
	}
	return name, value, nil
}

func (s *Service) invalidate(ctx context.Context, prefix string) {
	if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
		s.logger.Warn("invalidate: failed to drop %s cache: %v", prefix, err)
	}
}

func (s *Service) mapProductError(op string, err error) error {
	switch {
	case errors.Is(err, productRepo.ErrProductNotFound):
		s.logger.Warn("%s: product not found", op)
		return ErrProductNotFound
	case errors.Is(err, productRepo.ErrProductInUse):
		s.logger.Warn("%s: product is referenced by sales", op)
		return ErrProductInUse
	case errors.Is(err, productRepo.ErrCategoryNotFound):
		s.logger.Warn("%s: category not found", op)
		return ErrCategoryNotFound
	case errors.Is(err, productRepo.ErrCategoryHasProducts):
		s.logger.Warn("%s: category still has products", op)
		return ErrCategoryHasProducts
	case errors.Is(err, productRepo.ErrSlugTaken):
		s.logger.Warn("%s: slug already taken", op)
		return ErrSlugTaken
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

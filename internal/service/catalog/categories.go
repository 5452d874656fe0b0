package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-ClinicService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-ClinicService/internal/service/catalog/models"
	"github.com/m04kA/SMC-ClinicService/pkg/slug"
)

// ListCategories возвращает категории услуг в порядке отображения
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	s.logger.Info("ListCategories: fetching service categories")

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

// GetCategory получает категорию услуг по ID
func (s *Service) GetCategory(ctx context.Context, id int64) (*models.CategoryResponse, error) {
	s.logger.Info("GetCategory: fetching category id=%d", id)

	category, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, s.mapCategoryError("GetCategory", id, err)
	}
	return models.FromDomainCategory(category), nil
}

// CreateCategory создает категорию услуг
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	s.logger.Info("CreateCategory: creating category name=%q", req.Name)

	category := req.ToDomainCategory()
	if err := prepareCategory(category, req.Slug); err != nil {
		s.logger.Warn("CreateCategory: validation failed: %v", err)
		return nil, err
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, s.mapCategoryError("CreateCategory", 0, err)
	}

	s.invalidateCategories(ctx)
	s.logger.Info("CreateCategory: successfully created category id=%d", created.ID)
	return models.FromDomainCategory(created), nil
}

// UpdateCategory полностью заменяет поля категории
func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	s.logger.Info("UpdateCategory: updating category id=%d", id)

	existing, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, s.mapCategoryError("UpdateCategory", id, err)
	}

	category := req.ToDomainCategory()
	category.ID = id
	category.CreatedAt = existing.CreatedAt
	slugValue := req.Slug
	if slugValue == nil {
		slugValue = &existing.Slug
	}
	if err := prepareCategory(category, slugValue); err != nil {
		s.logger.Warn("UpdateCategory: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.repo.UpdateCategory(ctx, category)
	if err != nil {
		return nil, s.mapCategoryError("UpdateCategory", id, err)
	}

	s.invalidateCategories(ctx)
	s.logger.Info("UpdateCategory: successfully updated category id=%d", id)
	return models.FromDomainCategory(updated), nil
}

// DeleteCategory удаляет категорию; категория с услугами не удаляется
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	s.logger.Info("DeleteCategory: deleting category id=%d", id)

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return s.mapCategoryError("DeleteCategory", id, err)
	}

	s.invalidateCategories(ctx)
	s.logger.Info("DeleteCategory: successfully deleted category id=%d", id)
	return nil
}

func prepareCategory(category *domain.ServiceCategory, slugValue *string) error {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(category.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if slugValue != nil && strings.TrimSpace(*slugValue) != "" {
		category.Slug = slug.Make(*slugValue)
	} else {
		category.Slug = slug.Make(category.Name)
	}
	if category.Slug == "" {
		return fmt.Errorf("%w: slug cannot be derived from name", ErrInvalidInput)
	}
	return nil
}

func (s *Service) invalidateCategories(ctx context.Context) {
	if err := s.cache.DeleteByPrefix(ctx, categoriesCachePrefix); err != nil {
		s.logger.Warn("invalidateCategories: failed to drop categories cache: %v", err)
	}
}

func (s *Service) mapCategoryError(op string, id int64, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrCategoryNotFound):
		s.logger.Warn("%s: category id=%d not found", op, id)
		return ErrCategoryNotFound
	case errors.Is(err, catalogRepo.ErrCategoryHasServices):
		s.logger.Warn("%s: category id=%d still has services", op, id)
		return ErrCategoryHasServices
	case errors.Is(err, catalogRepo.ErrSlugTaken):
		s.logger.Warn("%s: slug already taken", op)
		return ErrSlugTaken
	}
	s.logger.Error("%s: repository error for category id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

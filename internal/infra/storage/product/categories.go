package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var categoryColumns = []string{
	"id",
	"name",
	"slug",
	"description",
	"display_order",
	"created_at",
}

// ListCategories возвращает категории товаров
func (r *Repository) ListCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(categoryColumns...).
		From("product_categories").
		OrderBy("display_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.ProductCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %v", ErrScanRow, err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %v", ErrScanRow, err)
	}

	return categories, nil
}

// GetCategoryByID получает категорию товаров по ID
func (r *Repository) GetCategoryByID(ctx context.Context, id int64) (*domain.ProductCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(categoryColumns...).
		From("product_categories").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCategoryByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCategory(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%w: GetCategoryByID - scan: %v", ErrScanRow, err)
	}

	return c, nil
}

// CreateCategory создает категорию товаров
func (r *Repository) CreateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("product_categories").
		Columns("name", "slug", "description", "display_order").
		Values(c.Name, c.Slug, c.Description, c.DisplayOrder).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateCategory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: CreateCategory - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// UpdateCategory обновляет категорию товаров
func (r *Repository) UpdateCategory(ctx context.Context, c *domain.ProductCategory) (*domain.ProductCategory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("product_categories").
		Set("name", c.Name).
		Set("slug", c.Slug).
		Set("description", c.Description).
		Set("display_order", c.DisplayOrder).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateCategory - build update query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: UpdateCategory - execute update: %v", ErrExecQuery, err)
	}

	return c, nil
}

// DeleteCategory удаляет категорию, если в ней нет товаров (одним запросом)
func (r *Repository) DeleteCategory(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("product_categories").
		Where(squirrel.Eq{"id": id}).
		Where("NOT EXISTS (SELECT 1 FROM products p WHERE p.category_id = ?)", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteCategory - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrCategoryHasProducts
		}
		return fmt.Errorf("%w: DeleteCategory - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteCategory - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	if _, err := r.GetCategoryByID(ctx, id); err != nil {
		return err
	}
	return ErrCategoryHasProducts
}

func scanCategory(row rowScanner) (*domain.ProductCategory, error) {
	var c domain.ProductCategory
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Slug,
		&c.Description,
		&c.DisplayOrder,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

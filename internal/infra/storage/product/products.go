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

var productColumns = []string{
	"p.id",
	"p.name",
	"p.slug",
	"p.description",
	"p.price",
	"p.category_id",
	"c.name",
	"p.images",
	"p.track_stock",
	"p.stock",
	"p.is_active",
	"p.is_featured",
	"p.display_order",
	"p.meta_title",
	"p.meta_description",
	"p.created_at",
	"p.updated_at",
}

// Repository репозиторий товаров и категорий товаров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория товаров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает товары по фильтру
func (r *Repository) List(ctx context.Context, filter domain.ProductsFilter) ([]*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.baseSelect().OrderBy("p.display_order ASC", "p.id ASC")

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.is_active": true})
	}
	if filter.CategoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.category_id": *filter.CategoryID})
	}
	if filter.Featured != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.is_featured": *filter.Featured})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return products, nil
}

// GetByID получает товар по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"p.id": id})
}

// GetBySlug получает товар по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return r.get(ctx, "GetBySlug", squirrel.Eq{"p.slug": slug})
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	p, err := scanProduct(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}

	return p, nil
}

// Create создает товар
func (r *Repository) Create(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("products").
		Columns(
			"name",
			"slug",
			"description",
			"price",
			"category_id",
			"images",
			"track_stock",
			"stock",
			"is_active",
			"is_featured",
			"display_order",
			"meta_title",
			"meta_description",
		).
		Values(
			p.Name,
			p.Slug,
			p.Description,
			p.Price,
			p.CategoryID,
			p.Images,
			p.TrackStock,
			p.Stock,
			p.IsActive,
			p.IsFeatured,
			p.DisplayOrder,
			p.MetaTitle,
			p.MetaDescription,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, mapWriteError("Create", err)
	}

	return r.GetByID(ctx, id)
}

// Update перезаписывает редактируемые поля товара
func (r *Repository) Update(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("products").
		Set("name", p.Name).
		Set("slug", p.Slug).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("category_id", p.CategoryID).
		Set("images", p.Images).
		Set("track_stock", p.TrackStock).
		Set("stock", p.Stock).
		Set("is_active", p.IsActive).
		Set("is_featured", p.IsFeatured).
		Set("display_order", p.DisplayOrder).
		Set("meta_title", p.MetaTitle).
		Set("meta_description", p.MetaDescription).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, mapWriteError("Update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return r.GetByID(ctx, p.ID)
}

// Delete удаляет товар
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("products").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrProductInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *Repository) baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(productColumns...).
		From("products p").
		LeftJoin("product_categories c ON c.id = p.category_id")
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.Price,
		&p.CategoryID,
		&p.CategoryName,
		&p.Images,
		&p.TrackStock,
		&p.Stock,
		&p.IsActive,
		&p.IsFeatured,
		&p.DisplayOrder,
		&p.MetaTitle,
		&p.MetaDescription,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Images = p.Images.Sorted()
	return &p, nil
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return ErrSlugTaken
	case pgerrors.IsForeignKeyViolation(err):
		return fmt.Errorf("%w: %s - %v", ErrCategoryNotFound, op, err)
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var serviceColumns = []string{
	"id",
	"name",
	"slug",
	"description",
	"duration_minutes",
	"price",
	"image_url",
	"category_id",
	"parent_service_id",
	"is_active",
	"display_order",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога услуг и их категорий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListServices возвращает услуги в порядке отображения
func (r *Repository) ListServices(ctx context.Context, includeInactive bool) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(serviceColumns...).
		From("services").
		OrderBy("display_order ASC", "id ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, id int64) (*domain.Service, error) {
	return r.getService(ctx, "GetServiceByID", squirrel.Eq{"id": id})
}

// GetServiceBySlug получает услугу по slug
func (r *Repository) GetServiceBySlug(ctx context.Context, slug string) (*domain.Service, error) {
	return r.getService(ctx, "GetServiceBySlug", squirrel.Eq{"slug": slug})
}

func (r *Repository) getService(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(serviceColumns...).
		From("services").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}

	return s, nil
}

// HasChildren проверяет, есть ли у услуги подуслуги (включая неактивные)
func (r *Repository) HasChildren(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("EXISTS (SELECT 1 FROM services WHERE parent_service_id = ?)", id)).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasChildren - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: HasChildren - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// CreateService создает услугу
func (r *Repository) CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("services").
		Columns(
			"name",
			"slug",
			"description",
			"duration_minutes",
			"price",
			"image_url",
			"category_id",
			"parent_service_id",
			"is_active",
			"display_order",
		).
		Values(
			s.Name,
			s.Slug,
			s.Description,
			s.DurationMinutes,
			s.Price,
			s.ImageURL,
			s.CategoryID,
			s.ParentServiceID,
			s.IsActive,
			s.DisplayOrder,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateService - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapWriteError("CreateService", err)
	}

	return s, nil
}

// UpdateService перезаписывает редактируемые поля услуги
func (r *Repository) UpdateService(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("name", s.Name).
		Set("slug", s.Slug).
		Set("description", s.Description).
		Set("duration_minutes", s.DurationMinutes).
		Set("price", s.Price).
		Set("image_url", s.ImageURL).
		Set("category_id", s.CategoryID).
		Set("parent_service_id", s.ParentServiceID).
		Set("is_active", s.IsActive).
		Set("display_order", s.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateService - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, mapWriteError("UpdateService", err)
	}

	return s, nil
}

// ToggleService инвертирует флаг активности только у этой услуги (без каскада на подуслуги)
func (r *Repository) ToggleService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("is_active", squirrel.Expr("NOT is_active")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(serviceColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ToggleService - build update query: %v", ErrBuildQuery, err)
	}

	s, err := scanService(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: ToggleService - scan: %v", ErrScanRow, err)
	}

	return s, nil
}

// UpdateServiceOrder меняет порядок и родителя услуги (drag-and-drop)
func (r *Repository) UpdateServiceOrder(ctx context.Context, order domain.ServiceOrder) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("display_order", order.DisplayOrder).
		Set("parent_service_id", order.ParentServiceID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": order.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceOrder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("UpdateServiceOrder", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateServiceOrder - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// DeleteService удаляет услугу, если у нее нет подуслуг.
// Проверка и удаление выполняются одним запросом.
func (r *Repository) DeleteService(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("services").
		Where(squirrel.Eq{"id": id}).
		Where("NOT EXISTS (SELECT 1 FROM services c WHERE c.parent_service_id = ?)", id).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrServiceInUse
		}
		return fmt.Errorf("%w: DeleteService - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteService - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Ничего не удалено: либо услуги нет, либо есть подуслуги
	if _, err := r.GetServiceByID(ctx, id); err != nil {
		return err
	}
	return ErrServiceHasChildren
}

func scanService(row rowScanner) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Slug,
		&s.Description,
		&s.DurationMinutes,
		&s.Price,
		&s.ImageURL,
		&s.CategoryID,
		&s.ParentServiceID,
		&s.IsActive,
		&s.DisplayOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// mapWriteError переводит ошибки ограничений postgres в ошибки репозитория
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

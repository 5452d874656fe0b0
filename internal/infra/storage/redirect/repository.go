package redirect

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

var redirectColumns = []string{
	"id",
	"from_path",
	"to_path",
	"status_code",
	"is_active",
	"hits",
	"last_hit_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий редиректов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория редиректов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все редиректы
func (r *Repository) List(ctx context.Context) ([]*domain.Redirect, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(redirectColumns...).
		From("redirects").
		OrderBy("from_path ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	redirects := make([]*domain.Redirect, 0)
	for rows.Next() {
		rd, err := scanRedirect(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		redirects = append(redirects, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return redirects, nil
}

// GetByID получает редирект по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Redirect, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(redirectColumns...).
		From("redirects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rd, err := scanRedirect(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRedirectNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return rd, nil
}

// Hit находит активный редирект по пути и атомарно учитывает переход
func (r *Repository) Hit(ctx context.Context, fromPath string) (*domain.Redirect, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("redirects").
		Set("hits", squirrel.Expr("hits + 1")).
		Set("last_hit_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"from_path": fromPath, "is_active": true}).
		Suffix("RETURNING " + strings.Join(redirectColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Hit - build update query: %v", ErrBuildQuery, err)
	}

	rd, err := scanRedirect(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRedirectNotFound
		}
		return nil, fmt.Errorf("%w: Hit - scan: %v", ErrScanRow, err)
	}

	return rd, nil
}

// Create создает редирект
func (r *Repository) Create(ctx context.Context, rd *domain.Redirect) (*domain.Redirect, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("redirects").
		Columns("from_path", "to_path", "status_code", "is_active").
		Values(rd.FromPath, rd.ToPath, rd.StatusCode, rd.IsActive).
		Suffix("RETURNING id, hits, last_hit_at, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rd.ID, &rd.Hits, &rd.LastHitAt, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrPathTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return rd, nil
}

// Update перезаписывает редактируемые поля редиректа (счетчик не сбрасывается)
func (r *Repository) Update(ctx context.Context, rd *domain.Redirect) (*domain.Redirect, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("redirects").
		Set("from_path", rd.FromPath).
		Set("to_path", rd.ToPath).
		Set("status_code", rd.StatusCode).
		Set("is_active", rd.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": rd.ID}).
		Suffix("RETURNING hits, last_hit_at, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&rd.Hits, &rd.LastHitAt, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRedirectNotFound
		}
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrPathTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return rd, nil
}

// Delete удаляет редирект
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("redirects").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRedirectNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRedirect(row rowScanner) (*domain.Redirect, error) {
	var rd domain.Redirect
	err := row.Scan(
		&rd.ID,
		&rd.FromPath,
		&rd.ToPath,
		&rd.StatusCode,
		&rd.IsActive,
		&rd.Hits,
		&rd.LastHitAt,
		&rd.CreatedAt,
		&rd.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rd, nil
}

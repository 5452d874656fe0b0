package sale

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var saleColumns = []string{
	"s.id",
	"s.client_name",
	"s.client_email",
	"s.client_phone",
	"s.product_id",
	"COALESCE(p.name, '')",
	"COALESCE(p.price, 0)",
	"s.final_price",
	"s.status",
	"s.newsletter_opt_in",
	"s.client_notes",
	"s.admin_notes",
	"s.created_at",
	"s.updated_at",
}

// UpdateFields изменяемые администратором поля продажи; nil означает "не менять"
type UpdateFields struct {
	Status     *domain.SaleStatus
	FinalPrice *decimal.Decimal
	ClearPrice bool // сбросить finalPrice в NULL
	AdminNotes *string
}

// Repository репозиторий продаж
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория продаж
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает продажу
func (r *Repository) Create(ctx context.Context, s *domain.Sale) (*domain.Sale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sales").
		Columns(
			"client_name",
			"client_email",
			"client_phone",
			"product_id",
			"final_price",
			"status",
			"newsletter_opt_in",
			"client_notes",
			"admin_notes",
		).
		Values(
			s.ClientName,
			s.ClientEmail,
			s.ClientPhone,
			s.ProductID,
			s.FinalPrice,
			s.Status,
			s.NewsletterOptIn,
			s.ClientNotes,
			s.AdminNotes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, id)
}

// GetByID получает продажу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.baseSelect().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSale(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return s, nil
}

// List возвращает продажи (сначала новые), опционально по статусу
func (r *Repository) List(ctx context.Context, status *domain.SaleStatus) ([]*domain.Sale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.baseSelect().OrderBy("s.created_at DESC")
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.status": *status})
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

	sales := make([]*domain.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return sales, nil
}

// Update частично обновляет продажу
func (r *Repository) Update(ctx context.Context, id int64, fields UpdateFields) (*domain.Sale, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("sales").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if fields.Status != nil {
		updateBuilder = updateBuilder.Set("status", *fields.Status)
	}
	if fields.ClearPrice {
		updateBuilder = updateBuilder.Set("final_price", nil)
	} else if fields.FinalPrice != nil {
		updateBuilder = updateBuilder.Set("final_price", *fields.FinalPrice)
	}
	if fields.AdminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *fields.AdminNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrSaleNotFound
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет продажу
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sales").Where(squirrel.Eq{"id": id}).ToSql()
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
		return ErrSaleNotFound
	}

	return nil
}

func (r *Repository) baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(saleColumns...).
		From("sales s").
		LeftJoin("products p ON p.id = s.product_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSale(row rowScanner) (*domain.Sale, error) {
	var s domain.Sale
	err := row.Scan(
		&s.ID,
		&s.ClientName,
		&s.ClientEmail,
		&s.ClientPhone,
		&s.ProductID,
		&s.ProductName,
		&s.ProductPrice,
		&s.FinalPrice,
		&s.Status,
		&s.NewsletterOptIn,
		&s.ClientNotes,
		&s.AdminNotes,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

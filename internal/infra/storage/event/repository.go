package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var eventColumns = []string{
	"id",
	"title",
	"slug",
	"short_description",
	"description",
	"starts_at",
	"ends_at",
	"location",
	"location_detail",
	"event_type",
	"is_free",
	"price",
	"max_places",
	"available_places",
	"hero_image",
	"gallery",
	"includes",
	"what_to_bring",
	"requirements",
	"whatsapp_number",
	"whatsapp_message",
	"status",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий событий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория событий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает события по фильтру в порядке начала
func (r *Repository) List(ctx context.Context, filter domain.EventsFilter) ([]*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(eventColumns...).
		From("events").
		OrderBy("starts_at ASC", "id ASC")

	if filter.OnlyPublic {
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"is_active": true}).
			Where(squirrel.NotEq{"status": domain.EventStatusDraft})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"starts_at": *filter.From})
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

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

// GetByID получает событие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return r.get(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetBySlug получает событие по slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	return r.get(ctx, "GetBySlug", squirrel.Eq{"slug": slug})
}

func (r *Repository) get(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(eventColumns...).
		From("events").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	e, err := scanEvent(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: %s - scan: %v", ErrScanRow, op, err)
	}

	return e, nil
}

// Create создает событие
func (r *Repository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("events").
		Columns(eventColumns[1 : len(eventColumns)-2]...).
		Values(writeValues(e)...).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return e, nil
}

// Update перезаписывает редактируемые поля события
func (r *Repository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("events").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": e.ID}).
		Suffix("RETURNING created_at, updated_at")

	columns := eventColumns[1 : len(eventColumns)-2]
	values := writeValues(e)
	for i, column := range columns {
		updateBuilder = updateBuilder.Set(column, values[i])
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return e, nil
}

// Delete удаляет событие
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("events").Where(squirrel.Eq{"id": id}).ToSql()
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
		return ErrEventNotFound
	}

	return nil
}

// writeValues значения в порядке eventColumns без id и временных меток
func writeValues(e *domain.Event) []interface{} {
	return []interface{}{
		e.Title,
		e.Slug,
		e.ShortDescription,
		e.Description,
		e.StartsAt,
		e.EndsAt,
		e.Location,
		e.LocationDetail,
		e.EventType,
		e.IsFree,
		e.Price,
		e.MaxPlaces,
		e.AvailablePlaces,
		e.HeroImage,
		e.Gallery,
		pq.Array(orEmpty(e.Includes)),
		pq.Array(orEmpty(e.WhatToBring)),
		e.Requirements,
		e.WhatsAppNumber,
		e.WhatsAppMessage,
		e.Status,
		e.IsActive,
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Slug,
		&e.ShortDescription,
		&e.Description,
		&e.StartsAt,
		&e.EndsAt,
		&e.Location,
		&e.LocationDetail,
		&e.EventType,
		&e.IsFree,
		&e.Price,
		&e.MaxPlaces,
		&e.AvailablePlaces,
		&e.HeroImage,
		&e.Gallery,
		pq.Array(&e.Includes),
		pq.Array(&e.WhatToBring),
		&e.Requirements,
		&e.WhatsAppNumber,
		&e.WhatsAppMessage,
		&e.Status,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Gallery = e.Gallery.Sorted()
	return &e, nil
}

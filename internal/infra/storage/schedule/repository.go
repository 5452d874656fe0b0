package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/pgerrors"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

// Repository репозиторий расписания: рабочие часы, блокировки дат, контакты и буфер
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ============================================================
// Рабочие часы
// ============================================================

var workingHourColumns = []string{
	"id",
	"day_of_week",
	"open_time",
	"close_time",
	"break_start",
	"break_end",
	"is_open",
	"updated_at",
}

// ListWorkingHours возвращает все строки расписания по порядку дней
func (r *Repository) ListWorkingHours(ctx context.Context) ([]*domain.WorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHourColumns...).
		From("working_hours").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHour, 0, 7)
	for rows.Next() {
		wh, err := scanWorkingHour(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWorkingHours - scan row: %v", ErrScanRow, err)
		}
		hours = append(hours, wh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return hours, nil
}

// GetWorkingHour возвращает расписание на день недели (0=воскресенье)
func (r *Repository) GetWorkingHour(ctx context.Context, dayOfWeek int) (*domain.WorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(workingHourColumns...).
		From("working_hours").
		Where(squirrel.Eq{"day_of_week": dayOfWeek})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHour - build select query: %v", ErrBuildQuery, err)
	}

	wh, err := scanWorkingHour(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorkingHourNotFound
		}
		if pgerrors.IsSlotConflict(err) {
			return nil, fmt.Errorf("%w: GetWorkingHour - %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: GetWorkingHour - scan: %v", ErrScanRow, err)
	}

	return wh, nil
}

// UpsertWorkingHour создает или обновляет строку расписания по дню недели
func (r *Repository) UpsertWorkingHour(ctx context.Context, wh *domain.WorkingHour) (*domain.WorkingHour, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns("day_of_week", "open_time", "close_time", "break_start", "break_end", "is_open").
		Values(wh.DayOfWeek, wh.OpenTime, wh.CloseTime, wh.BreakStart, wh.BreakEnd, wh.IsOpen).
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			is_open = EXCLUDED.is_open,
			updated_at = NOW()
		RETURNING id, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWorkingHour - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&wh.ID, &wh.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: UpsertWorkingHour - execute upsert: %v", ErrExecQuery, err)
	}

	return wh, nil
}

func scanWorkingHour(row rowScanner) (*domain.WorkingHour, error) {
	var wh domain.WorkingHour
	err := row.Scan(
		&wh.ID,
		&wh.DayOfWeek,
		&wh.OpenTime,
		&wh.CloseTime,
		&wh.BreakStart,
		&wh.BreakEnd,
		&wh.IsOpen,
		&wh.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// ============================================================
// Блокировки дат
// ============================================================

var blockedDateColumns = []string{
	"id",
	"date",
	"reason",
	"all_day",
	"start_time",
	"end_time",
	"created_at",
}

// ListBlockedDates возвращает блокировки в диапазоне дат (границы включительно, nil - без ограничения)
func (r *Repository) ListBlockedDates(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(blockedDateColumns...).
		From("blocked_dates").
		OrderBy("date ASC", "start_time ASC NULLS FIRST")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)})
	}

	// Блокировки на одну дату читаются в create_booking внутри транзакции
	if dbmetrics.IsInTransaction(ctx) && from != nil && to != nil && from.Equal(*to) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedDates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsSlotConflict(err) {
			return nil, fmt.Errorf("%w: ListBlockedDates - %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: ListBlockedDates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocked := make([]*domain.BlockedDate, 0)
	for rows.Next() {
		bd, err := scanBlockedDate(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBlockedDates - scan row: %v", ErrScanRow, err)
		}
		blocked = append(blocked, bd)
	}
	if err := rows.Err(); err != nil {
		if pgerrors.IsSlotConflict(err) {
			return nil, fmt.Errorf("%w: ListBlockedDates - %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: ListBlockedDates - rows error: %v", ErrScanRow, err)
	}

	return blocked, nil
}

// GetBlockedDate возвращает блокировку по ID
func (r *Repository) GetBlockedDate(ctx context.Context, id int64) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(blockedDateColumns...).
		From("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBlockedDate - build select query: %v", ErrBuildQuery, err)
	}

	bd, err := scanBlockedDate(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlockedDateNotFound
		}
		return nil, fmt.Errorf("%w: GetBlockedDate - scan: %v", ErrScanRow, err)
	}

	return bd, nil
}

// CreateBlockedDate создает блокировку. Для AllDay время не сохраняется
func (r *Repository) CreateBlockedDate(ctx context.Context, bd *domain.BlockedDate) (*domain.BlockedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if bd.AllDay {
		bd.StartTime = nil
		bd.EndTime = nil
	}

	query, args, err := psqlbuilder.Insert("blocked_dates").
		Columns("date", "reason", "all_day", "start_time", "end_time").
		Values(bd.Date.Format(domain.DateFormat), bd.Reason, bd.AllDay, bd.StartTime, bd.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&bd.ID, &bd.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateBlockedDate - execute insert: %v", ErrExecQuery, err)
	}

	return bd, nil
}

// DeleteBlockedDate удаляет блокировку
func (r *Repository) DeleteBlockedDate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_dates").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBlockedDate - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlockedDateNotFound
	}

	return nil
}

func scanBlockedDate(row rowScanner) (*domain.BlockedDate, error) {
	var bd domain.BlockedDate
	err := row.Scan(
		&bd.ID,
		&bd.Date,
		&bd.Reason,
		&bd.AllDay,
		&bd.StartTime,
		&bd.EndTime,
		&bd.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &bd, nil
}

// ============================================================
// Контакты и буфер
// ============================================================

var contactInfoColumns = []string{
	"phone",
	"email",
	"whatsapp",
	"address",
	"instagram",
	"facebook",
	"maps_url",
	"buffer_minutes",
	"updated_at",
}

// GetContactInfo возвращает единственную строку контактов
func (r *Repository) GetContactInfo(ctx context.Context) (*domain.ContactInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(contactInfoColumns...).
		From("contact_info").
		Where(squirrel.Eq{"id": 1})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR SHARE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetContactInfo - build select query: %v", ErrBuildQuery, err)
	}

	var info domain.ContactInfo
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&info.Phone,
		&info.Email,
		&info.WhatsApp,
		&info.Address,
		&info.Instagram,
		&info.Facebook,
		&info.MapsURL,
		&info.BufferMinutes,
		&info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContactInfoNotFound
		}
		if pgerrors.IsSlotConflict(err) {
			return nil, fmt.Errorf("%w: GetContactInfo - %v", ErrSerialization, err)
		}
		return nil, fmt.Errorf("%w: GetContactInfo - scan: %v", ErrScanRow, err)
	}

	return &info, nil
}

// SaveContactInfo перезаписывает строку контактов
func (r *Repository) SaveContactInfo(ctx context.Context, info *domain.ContactInfo) (*domain.ContactInfo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("contact_info").
		Columns("id", "phone", "email", "whatsapp", "address", "instagram", "facebook", "maps_url", "buffer_minutes").
		Values(1, info.Phone, info.Email, info.WhatsApp, info.Address, info.Instagram, info.Facebook, info.MapsURL, info.BufferMinutes).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			whatsapp = EXCLUDED.whatsapp,
			address = EXCLUDED.address,
			instagram = EXCLUDED.instagram,
			facebook = EXCLUDED.facebook,
			maps_url = EXCLUDED.maps_url,
			buffer_minutes = EXCLUDED.buffer_minutes,
			updated_at = NOW()
		RETURNING updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SaveContactInfo - build upsert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&info.UpdatedAt); err != nil {
		return nil, fmt.Errorf("%w: SaveContactInfo - execute upsert: %v", ErrExecQuery, err)
	}

	return info, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

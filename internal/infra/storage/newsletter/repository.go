package newsletter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicService/pkg/psqlbuilder"
)

var subscriberColumns = []string{
	"id",
	"email",
	"name",
	"source",
	"is_active",
	"subscribed_at",
	"unsubscribed_at",
}

// Repository репозиторий подписчиков рассылки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория подписчиков
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Subscribe создает подписку или повторно активирует существующую по email.
// Источник первой подписки сохраняется, имя обновляется, если передано.
func (r *Repository) Subscribe(ctx context.Context, sub *domain.Subscriber) (*domain.Subscriber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("newsletter_subscribers").
		Columns("email", "name", "source").
		Values(strings.ToLower(sub.Email), sub.Name, sub.Source).
		Suffix(`ON CONFLICT (email) DO UPDATE SET
			name = COALESCE(EXCLUDED.name, newsletter_subscribers.name),
			is_active = TRUE,
			subscribed_at = CASE WHEN newsletter_subscribers.is_active
				THEN newsletter_subscribers.subscribed_at ELSE NOW() END,
			unsubscribed_at = NULL
		RETURNING ` + strings.Join(subscriberColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Subscribe - build upsert query: %v", ErrBuildQuery, err)
	}

	result, err := scanSubscriber(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Subscribe - execute upsert: %v", ErrExecQuery, err)
	}

	return result, nil
}

// Unsubscribe мягко отписывает по email (строка сохраняется)
func (r *Repository) Unsubscribe(ctx context.Context, email string) error {
	return r.deactivate(ctx, "Unsubscribe", squirrel.Eq{"email": strings.ToLower(email)})
}

// Deactivate мягко отписывает по ID
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	return r.deactivate(ctx, "Deactivate", squirrel.Eq{"id": id})
}

func (r *Repository) deactivate(ctx context.Context, op string, where squirrel.Sqlizer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("newsletter_subscribers").
		Set("is_active", false).
		Set("unsubscribed_at", squirrel.Expr("COALESCE(unsubscribed_at, NOW())")).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSubscriberNotFound
	}

	return nil
}

// List возвращает подписчиков (сначала новые)
func (r *Repository) List(ctx context.Context, onlyActive bool) ([]*domain.Subscriber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(subscriberColumns...).
		From("newsletter_subscribers").
		OrderBy("subscribed_at DESC", "id DESC")
	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
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

	subscribers := make([]*domain.Subscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return subscribers, nil
}

// GetByID получает подписчика по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Subscriber, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(subscriberColumns...).
		From("newsletter_subscribers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSubscriber(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan: %v", ErrScanRow, err)
	}

	return s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubscriber(row rowScanner) (*domain.Subscriber, error) {
	var s domain.Subscriber
	err := row.Scan(
		&s.ID,
		&s.Email,
		&s.Name,
		&s.Source,
		&s.IsActive,
		&s.SubscribedAt,
		&s.UnsubscribedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

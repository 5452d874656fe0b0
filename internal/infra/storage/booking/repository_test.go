package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClinicService/internal/domain"
	"github.com/m04kA/SMC-ClinicService/pkg/dbmetrics"
)

// fakeExecutor запоминает последний запрос и возвращает заданную ошибку
type fakeExecutor struct {
	query    string
	args     []interface{}
	queryErr error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.query, f.args = query, args
	return nil, f.queryErr
}

func (f *fakeExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	f.query, f.args = query, args
	return nil, f.queryErr
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	panic("QueryRowContext is not expected")
}

func (f *fakeExecutor) Commit() error   { return nil }
func (f *fakeExecutor) Rollback() error { return nil }

func TestList_LockConflictInTransaction(t *testing.T) {
	tests := []struct {
		name string
		code pq.ErrorCode
	}{
		{name: "serialization failure", code: "40001"},
		{name: "deadlock", code: "40P01"},
	}

	day := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &fakeExecutor{queryErr: &pq.Error{Code: tt.code}}
			repo := NewRepository(&fakeExecutor{})
			ctx := dbmetrics.WithTx(context.Background(), tx)

			_, err := repo.List(ctx, domain.BookingsFilter{StartDate: &day, EndDate: &day, OnlyOccupying: true})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			assert.Contains(t, tx.query, "FOR UPDATE OF b")
		})
	}
}

func TestList_OtherErrorsStayInternal(t *testing.T) {
	db := &fakeExecutor{queryErr: &pq.Error{Code: "42P01"}}
	repo := NewRepository(db)

	_, err := repo.List(context.Background(), domain.BookingsFilter{})
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
	assert.NotContains(t, db.query, "FOR UPDATE")
}

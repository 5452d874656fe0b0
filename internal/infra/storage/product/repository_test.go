package product

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResult struct{ rows int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, nil }

// fakeExecutor запоминает выполненный запрос
type fakeExecutor struct {
	query   string
	args    []interface{}
	rows    int64
	execErr error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.query, f.args = query, args
	if f.execErr != nil {
		return nil, f.execErr
	}
	return fakeResult{rows: f.rows}, nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	panic("QueryContext is not expected")
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	panic("QueryRowContext is not expected")
}

func TestDeleteCategory_ChecksProductsInSameStatement(t *testing.T) {
	db := &fakeExecutor{rows: 1}
	repo := NewRepository(db)

	require.NoError(t, repo.DeleteCategory(context.Background(), 3))

	assert.Equal(t,
		"DELETE FROM product_categories WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM products p WHERE p.category_id = $2)",
		db.query)
	assert.Equal(t, []interface{}{int64(3), int64(3)}, db.args)
}

func TestDeleteCategory_ForeignKeyRace(t *testing.T) {
	db := &fakeExecutor{execErr: &pq.Error{Code: "23503"}}
	repo := NewRepository(db)

	err := repo.DeleteCategory(context.Background(), 3)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)
}

package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pq.Error{Code: CodeExclusionViolation})

	assert.True(t, IsSlotConflict(wrapped))
	assert.True(t, IsSlotConflict(&pq.Error{Code: CodeSerializationFailure}))
	assert.False(t, IsSlotConflict(&pq.Error{Code: CodeUniqueViolation}))

	assert.True(t, IsUniqueViolation(&pq.Error{Code: CodeUniqueViolation}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: CodeForeignKeyViolation}))

	assert.Equal(t, "", Code(errors.New("plain")))
	assert.Equal(t, "", Code(nil))
}

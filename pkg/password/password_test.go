package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	hash, err := Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, Check(hash, "correct horse"))
	assert.ErrorIs(t, Check(hash, "wrong horse"), ErrMismatch)
}

func TestHash_TooShort(t *testing.T) {
	_, err := Hash("short")
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestCheck_MalformedHash(t *testing.T) {
	err := Check("not-a-hash", "whatever1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

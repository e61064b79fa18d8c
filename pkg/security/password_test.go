package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hash)

	assert.NoError(t, hasher.Compare(hash, "admin123"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestInvalidCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(-1)

	hash, err := hasher.Hash("admin123")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "admin123"))
}

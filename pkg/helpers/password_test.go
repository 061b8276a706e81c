package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	// Salting makes every hash unique.
	other, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
}

func TestCompareHashAndPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CompareHashAndPassword(hash, "correct horse battery"))
	assert.False(t, CompareHashAndPassword(hash, "wrong horse battery"))
	assert.False(t, CompareHashAndPassword("not-a-hash", "correct horse battery"))
}

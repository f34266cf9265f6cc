package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotContains(t, hash, "Secret1")

	ok, err := VerifyPassword("Secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	hash, err := HashPassword("Secret1")
	require.NoError(t, err)

	ok, err := VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("Secret1")
	require.NoError(t, err)

	second, err := HashPassword("Secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

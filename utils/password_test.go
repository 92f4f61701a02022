package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("securepassword123")
	require.NoError(t, err)
	assert.NotEqual(t, "securepassword123", hash)

	assert.True(t, CheckPassword(hash, "securepassword123"))
	assert.False(t, CheckPassword(hash, "wrongpassword"))
	assert.False(t, CheckPassword("", "securepassword123"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("securepassword123")
	require.NoError(t, err)
	h2, err := HashPassword("securepassword123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

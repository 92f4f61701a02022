package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecureTokenLengthAndCharset(t *testing.T) {
	for _, length := range []int{1, 16, 32, 64} {
		tok, err := GenerateSecureToken(length)
		require.NoError(t, err)
		assert.Len(t, tok, length)
		for _, r := range tok {
			assert.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected character %q", r)
		}
	}
}

func TestGenerateSecureTokenUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := GenerateSecureToken(32)
		require.NoError(t, err)
		assert.False(t, seen[tok], "duplicate token generated")
		seen[tok] = true
	}
}

func TestTokenKindLengths(t *testing.T) {
	vt, err := GenerateVerificationToken()
	require.NoError(t, err)
	assert.Len(t, vt, VerificationTokenLength)

	at, err := GenerateAccessToken()
	require.NoError(t, err)
	assert.Len(t, at, AccessTokenLength)
}

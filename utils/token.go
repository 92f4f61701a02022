package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// VerificationTokenLength is the length of single-use email verification tokens.
	VerificationTokenLength = 32
	// AccessTokenLength is the length of file download capability tokens.
	AccessTokenLength = 64
)

// GenerateSecureToken returns a random alphanumeric string of the given
// length drawn from crypto/rand.
func GenerateSecureToken(length int) (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateVerificationToken issues a token proving control of a signup email.
func GenerateVerificationToken() (string, error) {
	return GenerateSecureToken(VerificationTokenLength)
}

// GenerateAccessToken issues a download capability token for a file record.
func GenerateAccessToken() (string, error) {
	return GenerateSecureToken(AccessTokenLength)
}

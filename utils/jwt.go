package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/secureshare/secureshare/config"
)

// Claims defines the session token claims. The subject carries the
// authenticated user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// signingMethod resolves the configured algorithm, restricted to the HMAC
// family since signing uses a shared server secret.
func signingMethod(name string) (jwt.SigningMethod, error) {
	method := jwt.GetSigningMethod(name)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unsupported signing algorithm: " + name)
	}
	return method, nil
}

// GenerateSessionToken issues a signed, expiring bearer token for the given email.
func GenerateSessionToken(email string, duration time.Duration) (string, error) {
	cfg := config.Get()

	method, err := signingMethod(cfg.Algorithm)
	if err != nil {
		return "", err
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(method, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// ParseSessionToken validates a bearer token's signature and expiry and returns its claims.
func ParseSessionToken(tokenStr string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}

	return claims, nil
}

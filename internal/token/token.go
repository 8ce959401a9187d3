// Package token issues and verifies signed, time-limited identity tokens.
package token

import (
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Verification failure kinds. Callers log the distinction but must surface
// a single generic message to clients.
var (
	// ErrMalformed indicates a token whose encoding or claims are structurally invalid.
	ErrMalformed = errors.New("token malformed")

	// ErrExpired indicates a token past its expiry.
	ErrExpired = errors.New("token expired")

	// ErrSignature indicates a token whose signature does not match the signing key.
	ErrSignature = errors.New("token signature invalid")
)

// Service signs and verifies HS256 JWTs carrying a user ID as subject.
// The signing key is fixed at construction; rotating it invalidates all
// outstanding tokens.
type Service struct {
	signKey []byte
}

// NewService constructs a token service with the given signing key.
func NewService(signKey []byte) *Service {
	return &Service{signKey: signKey}
}

// Issue creates a signed token for userID expiring after ttl.
func (s *Service) Issue(userID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

// Verify checks signature and expiry and returns the embedded user ID.
// Verification is pure: no state is read or written beyond the signing key.
func (s *Service) Verify(tokenString string) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrSignature
		}
		return s.signKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, ErrSignature
		default:
			return uuid.Nil, ErrMalformed
		}
	}
	if !parsed.Valid {
		return uuid.Nil, ErrMalformed
	}
	id, err := uuid.FromString(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrMalformed
	}
	return id, nil
}

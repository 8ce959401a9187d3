// Package crypto implements server-side password hashing and verification.
package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost balances hashing time against brute-force resistance.
const bcryptCost = 10

// ErrInvalidDigest indicates a stored digest that is not a valid bcrypt hash.
var ErrInvalidDigest = errors.New("invalid password digest")

// HashPassword returns a bcrypt digest of password with an embedded random salt.
// Hashing the same password twice yields different digests.
func HashPassword(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcryptCost)
}

// VerifyPassword reports whether password matches the stored digest.
// A mismatch is (false, nil); only a structurally malformed digest yields an error.
func VerifyPassword(password, digest []byte) (bool, error) {
	err := bcrypt.CompareHashAndPassword(digest, password)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrInvalidDigest
	}
}

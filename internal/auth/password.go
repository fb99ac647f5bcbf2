package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/quickblog/blog-api/internal/core/domain"
)

// HashPassword produces a salted bcrypt digest of plaintext.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares plaintext against a stored bcrypt hash.
// A mismatch returns ErrInvalidCredentials; a stored value that is not a
// parseable bcrypt hash returns ErrUnknownHash so callers can log the
// corruption distinctly while still answering with a plain login failure.
func VerifyPassword(plaintext, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return domain.ErrInvalidCredentials
	default:
		return domain.ErrUnknownHash
	}
}

package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor used when hashing a plaintext shared password
const BcryptCost = 12

// ErrPasswordNotConfigured is returned when no shared password is set
var ErrPasswordNotConfigured = errors.New("shared password is not configured")

// HashPassword hashes a password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a bcrypt hash with a candidate password
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// SharedPassword verifies login attempts against the single configured secret.
// The secret is only kept as a bcrypt hash so comparisons run in constant time.
type SharedPassword struct {
	hash string
}

// NewSharedPassword builds a checker from either a bcrypt hash or a plaintext secret.
// A hash takes precedence. With neither set the checker reports ErrPasswordNotConfigured.
func NewSharedPassword(plaintext, hash string) (*SharedPassword, error) {
	hash = strings.TrimSpace(hash)
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid shared password hash: %w", err)
		}
		return &SharedPassword{hash: hash}, nil
	}

	if plaintext == "" {
		return &SharedPassword{}, nil
	}

	hashed, err := HashPassword(plaintext)
	if err != nil {
		return nil, fmt.Errorf("failed to hash shared password: %w", err)
	}
	return &SharedPassword{hash: hashed}, nil
}

// Configured reports whether a secret is set
func (p *SharedPassword) Configured() bool {
	return p != nil && p.hash != ""
}

// Verify checks candidate against the shared secret
func (p *SharedPassword) Verify(candidate string) (bool, error) {
	if !p.Configured() {
		return false, ErrPasswordNotConfigured
	}
	return CheckPassword(p.hash, candidate), nil
}

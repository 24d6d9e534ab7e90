// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"ratehub/config"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/service"
)

// Password composition policy.
const (
	passwordMinLength = 8
	passwordMaxLength = 16
	specialCharSet    = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface
// using bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher is the constructor for bcryptHasher. The work factor comes
// from configuration and falls back to bcrypt's default cost.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := cfg.Auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidatePolicy enforces the signup password composition policy: 8-16
// characters, at least one uppercase letter and one special character.
func (h *bcryptHasher) ValidatePolicy(password string) error {
	if len(password) < passwordMinLength || len(password) > passwordMaxLength {
		return domainerrors.ErrPasswordPolicy.WithDetails("password length out of bounds")
	}

	var hasUpper, hasSpecial bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if strings.ContainsRune(specialCharSet, r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return domainerrors.ErrPasswordPolicy.WithDetails("missing uppercase character")
	}
	if !hasSpecial {
		return domainerrors.ErrPasswordPolicy.WithDetails("missing special character")
	}

	return nil
}

// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
)

// Signup field length bounds (validator tags on the request DTOs mirror
// these; the usecase re-checks so policy holds for every caller).
const (
	NameMinLength    = 20
	NameMaxLength    = 60
	AddressMaxLength = 400
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account.
type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string // case-insensitive; normalized to the stored enumeration
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the account and its freshly issued session token. The
// delivery layer moves the token into the auth-token cookie; the account is
// serialized without its password hash.
type AuthOutput struct {
	Account *entity.Account
	Token   string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer depends on.
type AuthUsecase interface {
	// Signup validates the input, hashes the password, persists the account
	// with the role-dependent default status and issues a session token.
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)

	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password produce the identical Unauthorized error.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// ValidateAccount re-fetches the live account for a verified token
	// subject. A validly signed token whose account no longer exists yields
	// a not-found error: token validity is necessary but not sufficient.
	ValidateAccount(ctx context.Context, accountID int64) (*entity.Account, error)
}

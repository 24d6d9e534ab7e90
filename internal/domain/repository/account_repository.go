// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountFilter narrows account listings for the administrative views.
// Zero values mean "no restriction".
type AccountFilter struct {
	Role   entity.Role
	Status entity.Status
	Search string // matches name or email, case-insensitive substring
}

// AccountRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the implementation.
type AccountRepository interface {
	// Create persists a new account. Email uniqueness is enforced by the
	// storage layer; a duplicate surfaces as a Conflict domain error.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// FindByEmail retrieves a single account by email, case-insensitively.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Update modifies an existing account.
	Update(ctx context.Context, account *entity.Account) error

	// Delete removes an account by ID.
	Delete(ctx context.Context, id int64) error

	// List returns accounts matching the filter, newest first.
	List(ctx context.Context, filter AccountFilter) ([]*entity.Account, error)

	// Count returns the number of accounts matching the filter.
	Count(ctx context.Context, filter AccountFilter) (int64, error)
}

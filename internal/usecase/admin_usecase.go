package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
)

// --- Input DTOs ---

// ListAccountsInput filters the administrative account listing.
type ListAccountsInput struct {
	Role   string // case-insensitive; empty means any
	Status string // case-insensitive; empty means any
	Search string
}

// UpdateAccountInput carries administrative account changes. Nil fields are
// untouched. Role and status changes are admin-only by construction: only
// the admin usecase exposes them.
type UpdateAccountInput struct {
	Name    *string
	Address *string
	Role    *string
	Status  *string
}

// AdminCreateStoreInput lists a store on behalf of an owner account.
type AdminCreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID int64
}

// --- Output DTOs ---

// PlatformDashboard aggregates the platform-wide counters shown to admins.
type PlatformDashboard struct {
	TotalUsers    int64
	TotalOwners   int64
	TotalStores   int64
	TotalRatings  int64
	PendingOwners int64
}

// AdminUsecase defines the administrator-only business operations.
type AdminUsecase interface {
	// Dashboard returns the platform-wide counters.
	Dashboard(ctx context.Context) (*PlatformDashboard, error)

	// ListAccounts returns accounts matching the filter.
	ListAccounts(ctx context.Context, input *ListAccountsInput) ([]*entity.Account, error)

	// GetAccount returns a single account.
	GetAccount(ctx context.Context, accountID int64) (*entity.Account, error)

	// CreateAccount creates an account of any role with the same validation
	// as signup. Admin-created owners start active.
	CreateAccount(ctx context.Context, input *SignupInput) (*entity.Account, error)

	// UpdateAccount applies administrative changes, including role changes
	// and status transitions (pending -> active, any -> inactive).
	UpdateAccount(ctx context.Context, accountID int64, input *UpdateAccountInput) (*entity.Account, error)

	// DeleteAccount removes a non-administrator account.
	DeleteAccount(ctx context.Context, accountID int64) error

	// ListStores returns all stores, optionally filtered by search.
	ListStores(ctx context.Context, search string) ([]*entity.Store, error)

	// CreateStore lists a store on behalf of an owner account.
	CreateStore(ctx context.Context, input *AdminCreateStoreInput) (*entity.Store, error)

	// UpdateStore modifies any store.
	UpdateStore(ctx context.Context, storeID int64, input *UpdateStoreInput) (*entity.Store, error)

	// DeleteStore removes any store.
	DeleteStore(ctx context.Context, storeID int64) error

	// ListRatings returns ratings, optionally scoped to one store.
	ListRatings(ctx context.Context, storeID int64) ([]*entity.Rating, error)

	// DeleteRating removes any rating.
	DeleteRating(ctx context.Context, ratingID int64) error
}

package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
)

// StoreNameMaxLength mirrors the stores.name column width.
const StoreNameMaxLength = 100

// --- Input DTOs ---

// BrowseStoresInput filters the public store listing.
type BrowseStoresInput struct {
	Search string
	// UserID, when non-zero, attaches that user's own rating to each result.
	UserID int64
}

// CreateStoreInput defines the data required to list a new store.
type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
}

// UpdateStoreInput carries a partial store update. Nil fields are untouched.
type UpdateStoreInput struct {
	Name    *string
	Email   *string
	Address *string
}

// --- Output DTOs ---

// BrowsedStore is a store with the requesting user's own rating attached.
type BrowsedStore struct {
	Store    *entity.Store
	MyRating *entity.Rating // nil when the user has not rated this store
}

// OwnerDashboard aggregates what an owner sees for one of their stores.
type OwnerDashboard struct {
	Store        *entity.Store
	Distribution entity.RatingDistribution
	Ratings      []*entity.Rating
}

// StoreUsecase defines store-related business operations. Owner operations
// are ownership-scoped: a store belonging to someone else is reported as
// not found rather than forbidden, so existence never leaks across owners.
type StoreUsecase interface {
	// Browse lists stores with rating aggregates for the public catalog.
	Browse(ctx context.Context, input *BrowseStoresInput) ([]*BrowsedStore, error)

	// CreateStore lists a new store for the owner. Pending owners are
	// rejected until an administrator activates the account.
	CreateStore(ctx context.Context, ownerID int64, input *CreateStoreInput) (*entity.Store, error)

	// ListOwnStores returns the owner's stores with rating aggregates.
	ListOwnStores(ctx context.Context, ownerID int64) ([]*entity.Store, error)

	// UpdateStore modifies a store the owner owns.
	UpdateStore(ctx context.Context, ownerID, storeID int64, input *UpdateStoreInput) (*entity.Store, error)

	// DeleteStore removes a store the owner owns.
	DeleteStore(ctx context.Context, ownerID, storeID int64) error

	// Dashboard returns the aggregates for a store the owner owns.
	Dashboard(ctx context.Context, ownerID, storeID int64) (*OwnerDashboard, error)
}

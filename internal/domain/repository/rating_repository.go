package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"
)

// ErrRatingNotFound is returned when a rating is not found.
var ErrRatingNotFound = errors.New("rating not found")

// RatingFilter narrows rating listings. Zero values mean "no restriction".
type RatingFilter struct {
	StoreID int64
	UserID  int64
}

// RatingRepository defines the standard operations for rating persistence.
type RatingRepository interface {
	// Create persists a new rating. The one-rating-per-user-per-store rule is
	// enforced by a storage-level unique constraint; a violation surfaces as
	// a Conflict domain error.
	Create(ctx context.Context, rating *entity.Rating) error

	// FindByID retrieves a single rating by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Rating, error)

	// FindByStoreAndUser retrieves the rating a user left for a store.
	FindByStoreAndUser(ctx context.Context, storeID, userID int64) (*entity.Rating, error)

	// Update modifies an existing rating.
	Update(ctx context.Context, rating *entity.Rating) error

	// Delete removes a rating by ID.
	Delete(ctx context.Context, id int64) error

	// List returns ratings matching the filter with author and store names
	// populated, newest first.
	List(ctx context.Context, filter RatingFilter) ([]*entity.Rating, error)

	// Count returns the number of ratings matching the filter.
	Count(ctx context.Context, filter RatingFilter) (int64, error)

	// DistributionByStore returns the score histogram for a store.
	DistributionByStore(ctx context.Context, storeID int64) (entity.RatingDistribution, error)
}

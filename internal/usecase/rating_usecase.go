package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
)

// --- Input DTOs ---

// SubmitRatingInput defines the data required to rate a store.
type SubmitRatingInput struct {
	StoreID int64
	Score   int
	Comment string
}

// UpdateRatingInput carries a partial rating update. Nil fields are untouched.
type UpdateRatingInput struct {
	Score   *int
	Comment *string
}

// RatingUsecase defines rating-related business operations. User operations
// are author-scoped and owner replies are scoped to stores the replying
// owner owns; violations are masked as not-found.
type RatingUsecase interface {
	// Submit creates a rating. A second rating by the same user for the
	// same store is a Conflict, enforced by the storage layer.
	Submit(ctx context.Context, userID int64, input *SubmitRatingInput) (*entity.Rating, error)

	// Update modifies a rating the user authored.
	Update(ctx context.Context, userID, ratingID int64, input *UpdateRatingInput) (*entity.Rating, error)

	// Delete removes a rating the user authored.
	Delete(ctx context.Context, userID, ratingID int64) error

	// ListOwn returns the ratings the user has submitted, newest first.
	ListOwn(ctx context.Context, userID int64) ([]*entity.Rating, error)

	// ListForStore returns a store's ratings for its owner.
	ListForStore(ctx context.Context, ownerID, storeID int64) ([]*entity.Rating, error)

	// Reply sets the owner's response on a rating of a store they own.
	Reply(ctx context.Context, ownerID, ratingID int64, reply string) (*entity.Rating, error)
}

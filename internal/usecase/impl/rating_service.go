package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	storeRepo   repository.StoreRepository
	ratingRepo  repository.RatingRepository
	logger      *slog.Logger
}

// RatingServiceParams holds dependencies for ratingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	StoreRepo   repository.StoreRepository
	RatingRepo  repository.RatingRepository
	Logger      *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		storeRepo:   params.StoreRepo,
		ratingRepo:  params.RatingRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit creates a rating for a store. The one-rating-per-user-per-store rule
// and the store's existence are both enforced by storage constraints, so a
// concurrent duplicate or a vanishing store still surfaces correctly.
func (srv *ratingService) Submit(ctx context.Context, userID int64, input *usecase.SubmitRatingInput) (*entity.Rating, error) {
	srv.log(ctx).Info("Submitting rating", slog.Any("userID", userID), slog.Any("storeID", input.StoreID))

	if !entity.ValidScore(input.Score) {
		return nil, errors.Wrap(domainerrors.ErrInvalidScore, "score out of bounds")
	}

	rating := &entity.Rating{
		StoreID: input.StoreID,
		UserID:  userID,
		Score:   input.Score,
		Comment: strings.TrimSpace(input.Comment),
	}

	if err := srv.ratingRepo.Create(ctx, rating); err != nil {
		srv.log(ctx).Warn("Rating submit failed", slog.Any("userID", userID), slog.Any("storeID", input.StoreID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create rating")
	}

	srv.log(ctx).Debug("Rating submitted", slog.Any("ratingID", rating.ID))

	return rating, nil
}

// Update modifies a rating the user authored.
func (srv *ratingService) Update(ctx context.Context, userID, ratingID int64, input *usecase.UpdateRatingInput) (*entity.Rating, error) {
	srv.log(ctx).Info("Updating rating", slog.Any("userID", userID), slog.Any("ratingID", ratingID))

	var updated *entity.Rating
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		rating, err := findAuthoredRating(ctx, ratingRepo, userID, ratingID)
		if err != nil {
			return err
		}

		if input.Score != nil {
			if !entity.ValidScore(*input.Score) {
				return errors.Wrap(domainerrors.ErrInvalidScore, "score out of bounds")
			}
			rating.Score = *input.Score
		}
		if input.Comment != nil {
			rating.Comment = strings.TrimSpace(*input.Comment)
		}

		if err := ratingRepo.Update(ctx, rating); err != nil {
			return errors.Wrap(err, "failed to update rating")
		}
		updated = rating

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Rating update failed", slog.Any("userID", userID), slog.Any("ratingID", ratingID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute rating update transaction")
	}

	return updated, nil
}

// Delete removes a rating the user authored.
func (srv *ratingService) Delete(ctx context.Context, userID, ratingID int64) error {
	srv.log(ctx).Info("Deleting rating", slog.Any("userID", userID), slog.Any("ratingID", ratingID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		if _, err := findAuthoredRating(ctx, ratingRepo, userID, ratingID); err != nil {
			return err
		}

		if err := ratingRepo.Delete(ctx, ratingID); err != nil {
			return errors.Wrap(err, "failed to delete rating")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Rating delete failed", slog.Any("userID", userID), slog.Any("ratingID", ratingID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute rating delete transaction")
	}

	return nil
}

// ListOwn returns the ratings the user has submitted, newest first.
func (srv *ratingService) ListOwn(ctx context.Context, userID int64) ([]*entity.Rating, error) {
	ratings, err := srv.ratingRepo.List(ctx, repository.RatingFilter{UserID: userID})
	if err != nil {
		srv.log(ctx).Error("Failed to list own ratings", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list own ratings")
	}

	return ratings, nil
}

// ListForStore returns a store's ratings for its owner.
func (srv *ratingService) ListForStore(ctx context.Context, ownerID, storeID int64) ([]*entity.Rating, error) {
	store, err := srv.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "store lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}
	if store.OwnerID != ownerID {
		// Same outcome as a nonexistent store; existence never leaks.
		return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "store not owned by requester")
	}

	ratings, err := srv.ratingRepo.List(ctx, repository.RatingFilter{StoreID: storeID})
	if err != nil {
		srv.log(ctx).Error("Failed to list store ratings", slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	return ratings, nil
}

// Reply sets the owner's response on a rating of a store they own.
func (srv *ratingService) Reply(ctx context.Context, ownerID, ratingID int64, reply string) (*entity.Rating, error) {
	srv.log(ctx).Info("Replying to rating", slog.Any("ownerID", ownerID), slog.Any("ratingID", ratingID))

	if err := requireManageableOwner(ctx, srv.accountRepo, ownerID); err != nil {
		return nil, err
	}

	var updated *entity.Rating
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()
		storeRepo := repoFactory.StoreRepo()

		rating, err := ratingRepo.FindByID(ctx, ratingID)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return errors.Wrap(domainerrors.ErrRatingNotFound, "rating lookup failed")
			}

			return errors.Wrap(err, "failed to find rating by id")
		}

		store, err := storeRepo.FindByID(ctx, rating.StoreID)
		if err != nil {
			return errors.Wrap(err, "failed to find rated store")
		}
		if store.OwnerID != ownerID {
			// Masked: a rating on someone else's store looks nonexistent.
			return errors.Wrap(domainerrors.ErrRatingNotFound, "rating not on an owned store")
		}

		rating.OwnerReply = strings.TrimSpace(reply)
		if err := ratingRepo.Update(ctx, rating); err != nil {
			return errors.Wrap(err, "failed to update rating reply")
		}
		updated = rating

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Rating reply failed", slog.Any("ownerID", ownerID), slog.Any("ratingID", ratingID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute rating reply transaction")
	}

	return updated, nil
}

// findAuthoredRating loads a rating and verifies authorship. A rating written
// by a different user is reported as not found, never as forbidden.
func findAuthoredRating(ctx context.Context, ratingRepo repository.RatingRepository, userID, ratingID int64) (*entity.Rating, error) {
	rating, err := ratingRepo.FindByID(ctx, ratingID)
	if err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return nil, errors.Wrap(domainerrors.ErrRatingNotFound, "rating lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find rating by id")
	}

	if rating.UserID != userID {
		return nil, errors.Wrap(domainerrors.ErrRatingNotFound, "rating not authored by requester")
	}

	return rating, nil
}

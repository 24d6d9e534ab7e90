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

// storeService implements the StoreUsecase interface.
type storeService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	storeRepo   repository.StoreRepository
	ratingRepo  repository.RatingRepository
	logger      *slog.Logger
}

// StoreServiceParams holds dependencies for storeService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	StoreRepo   repository.StoreRepository
	RatingRepo  repository.RatingRepository
	Logger      *slog.Logger
}

// NewStoreService is the constructor for storeService.
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		storeRepo:   params.StoreRepo,
		ratingRepo:  params.RatingRepo,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Browse lists stores with rating aggregates for the public catalog.
func (srv *storeService) Browse(ctx context.Context, input *usecase.BrowseStoresInput) ([]*usecase.BrowsedStore, error) {
	stores, err := srv.storeRepo.List(ctx, repository.StoreFilter{Search: input.Search})
	if err != nil {
		srv.log(ctx).Error("Failed to list stores", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list stores")
	}

	// One query for all of the requesting user's ratings instead of one per
	// store in the listing.
	myRatings := map[int64]*entity.Rating{}
	if input.UserID != 0 {
		ratings, listErr := srv.ratingRepo.List(ctx, repository.RatingFilter{UserID: input.UserID})
		if listErr != nil {
			srv.log(ctx).Error("Failed to list own ratings for browse", slog.Any("userID", input.UserID), slog.Any("error", listErr))

			return nil, errors.Wrap(listErr, "failed to list user ratings for browse")
		}
		for _, rating := range ratings {
			myRatings[rating.StoreID] = rating
		}
	}

	browsed := make([]*usecase.BrowsedStore, 0, len(stores))
	for _, store := range stores {
		browsed = append(browsed, &usecase.BrowsedStore{
			Store:    store,
			MyRating: myRatings[store.ID],
		})
	}

	return browsed, nil
}

// CreateStore lists a new store for the owner.
func (srv *storeService) CreateStore(ctx context.Context, ownerID int64, input *usecase.CreateStoreInput) (*entity.Store, error) {
	srv.log(ctx).Info("Creating store", slog.Any("ownerID", ownerID), slog.String("name", input.Name))

	if err := requireManageableOwner(ctx, srv.accountRepo, ownerID); err != nil {
		return nil, err
	}

	store, err := buildStore(input, ownerID)
	if err != nil {
		srv.log(ctx).Warn("Store validation failed", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, err
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		srv.log(ctx).Error("Failed to create store", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create store")
	}

	srv.log(ctx).Debug("Store created", slog.Any("storeID", store.ID), slog.Any("ownerID", ownerID))

	return store, nil
}

func buildStore(input *usecase.CreateStoreInput, ownerID int64) (*entity.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("store name is required")
	}
	if len(name) > usecase.StoreNameMaxLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("store name length out of bounds")
	}

	address := strings.TrimSpace(input.Address)
	if len(address) > usecase.AddressMaxLength {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("address length out of bounds")
	}

	return &entity.Store{
		Name:    name,
		Email:   strings.TrimSpace(input.Email),
		Address: address,
		OwnerID: ownerID,
	}, nil
}

// applyStoreUpdate copies the non-nil fields of a partial update onto the
// store entity.
func applyStoreUpdate(store *entity.Store, input *usecase.UpdateStoreInput) {
	if input.Name != nil {
		store.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		store.Email = strings.TrimSpace(*input.Email)
	}
	if input.Address != nil {
		store.Address = strings.TrimSpace(*input.Address)
	}
}

// ListOwnStores returns the owner's stores with rating aggregates.
func (srv *storeService) ListOwnStores(ctx context.Context, ownerID int64) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.List(ctx, repository.StoreFilter{OwnerID: ownerID})
	if err != nil {
		srv.log(ctx).Error("Failed to list own stores", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list own stores")
	}

	return stores, nil
}

// UpdateStore modifies a store the owner owns.
func (srv *storeService) UpdateStore(ctx context.Context, ownerID, storeID int64, input *usecase.UpdateStoreInput) (*entity.Store, error) {
	srv.log(ctx).Info("Updating store", slog.Any("ownerID", ownerID), slog.Any("storeID", storeID))

	if err := requireManageableOwner(ctx, srv.accountRepo, ownerID); err != nil {
		return nil, err
	}

	var updated *entity.Store
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		store, err := srv.findOwnedStore(ctx, storeRepo, ownerID, storeID)
		if err != nil {
			return err
		}

		applyStoreUpdate(store, input)
		if len(store.Address) > usecase.AddressMaxLength {
			return domainerrors.ErrValidationFailed.WrapMessage("address length out of bounds")
		}
		if store.Name == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("store name is required")
		}
		if len(store.Name) > usecase.StoreNameMaxLength {
			return domainerrors.ErrValidationFailed.WrapMessage("store name length out of bounds")
		}

		if err := storeRepo.Update(ctx, store); err != nil {
			return errors.Wrap(err, "failed to update store")
		}
		updated = store

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Store update failed", slog.Any("ownerID", ownerID), slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute store update transaction")
	}

	return updated, nil
}

// DeleteStore removes a store the owner owns, cascading its ratings.
func (srv *storeService) DeleteStore(ctx context.Context, ownerID, storeID int64) error {
	srv.log(ctx).Info("Deleting store", slog.Any("ownerID", ownerID), slog.Any("storeID", storeID))

	if err := requireManageableOwner(ctx, srv.accountRepo, ownerID); err != nil {
		return err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		if _, err := srv.findOwnedStore(ctx, storeRepo, ownerID, storeID); err != nil {
			return err
		}

		if err := storeRepo.Delete(ctx, storeID); err != nil {
			return errors.Wrap(err, "failed to delete store")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Store delete failed", slog.Any("ownerID", ownerID), slog.Any("storeID", storeID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute store delete transaction")
	}

	return nil
}

// Dashboard returns the aggregates for a store the owner owns.
func (srv *storeService) Dashboard(ctx context.Context, ownerID, storeID int64) (*usecase.OwnerDashboard, error) {
	store, err := srv.findOwnedStore(ctx, srv.storeRepo, ownerID, storeID)
	if err != nil {
		srv.log(ctx).Warn("Dashboard lookup failed", slog.Any("ownerID", ownerID), slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, err
	}

	distribution, err := srv.ratingRepo.DistributionByStore(ctx, storeID)
	if err != nil {
		srv.log(ctx).Error("Failed to load rating distribution", slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load rating distribution")
	}

	ratings, err := srv.ratingRepo.List(ctx, repository.RatingFilter{StoreID: storeID})
	if err != nil {
		srv.log(ctx).Error("Failed to list store ratings", slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list store ratings")
	}

	return &usecase.OwnerDashboard{
		Store:        store,
		Distribution: distribution,
		Ratings:      ratings,
	}, nil
}

// findOwnedStore loads a store and verifies ownership. A store belonging to a
// different owner is reported as not found, never as forbidden.
func (srv *storeService) findOwnedStore(ctx context.Context, storeRepo repository.StoreRepository, ownerID, storeID int64) (*entity.Store, error) {
	store, err := storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "store lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find store by id")
	}

	if store.OwnerID != ownerID {
		return nil, errors.Wrap(domainerrors.ErrStoreNotFound, "store not owned by requester")
	}

	return store, nil
}


package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "ratehub/internal/delivery/context"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface. It bypasses ownership
// scoping by design; access is restricted to administrators at the router.
type adminService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	storeRepo   repository.StoreRepository
	ratingRepo  repository.RatingRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	StoreRepo   repository.StoreRepository
	RatingRepo  repository.RatingRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		storeRepo:   params.StoreRepo,
		ratingRepo:  params.RatingRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dashboard returns the platform-wide counters.
func (srv *adminService) Dashboard(ctx context.Context) (*usecase.PlatformDashboard, error) {
	totalUsers, err := srv.accountRepo.Count(ctx, repository.AccountFilter{Role: entity.RoleUser})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}

	totalOwners, err := srv.accountRepo.Count(ctx, repository.AccountFilter{Role: entity.RoleOwner})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count owners")
	}

	pendingOwners, err := srv.accountRepo.Count(ctx, repository.AccountFilter{Role: entity.RoleOwner, Status: entity.StatusPending})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count pending owners")
	}

	totalStores, err := srv.storeRepo.Count(ctx, repository.StoreFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count stores")
	}

	totalRatings, err := srv.ratingRepo.Count(ctx, repository.RatingFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count ratings")
	}

	return &usecase.PlatformDashboard{
		TotalUsers:    totalUsers,
		TotalOwners:   totalOwners,
		TotalStores:   totalStores,
		TotalRatings:  totalRatings,
		PendingOwners: pendingOwners,
	}, nil
}

// ListAccounts returns accounts matching the filter.
func (srv *adminService) ListAccounts(ctx context.Context, input *usecase.ListAccountsInput) ([]*entity.Account, error) {
	filter, err := buildAccountFilter(input)
	if err != nil {
		return nil, err
	}

	accounts, err := srv.accountRepo.List(ctx, filter)
	if err != nil {
		srv.log(ctx).Error("Failed to list accounts", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return accounts, nil
}

func buildAccountFilter(input *usecase.ListAccountsInput) (repository.AccountFilter, error) {
	filter := repository.AccountFilter{Search: input.Search}

	if input.Role != "" {
		role, ok := entity.ParseRole(input.Role)
		if !ok {
			return filter, errors.Wrap(domainerrors.ErrInvalidRole, "unknown role filter")
		}
		filter.Role = role
	}

	if input.Status != "" {
		status, ok := entity.ParseStatus(input.Status)
		if !ok {
			return filter, errors.Wrap(domainerrors.ErrInvalidStatus, "unknown status filter")
		}
		filter.Status = status
	}

	return filter, nil
}

// GetAccount returns a single account.
func (srv *adminService) GetAccount(ctx context.Context, accountID int64) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "account lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}

// CreateAccount creates an account of any role with the same validation as
// signup. Admin-created owners skip the pending stage: the administrator
// creating the account is the approval.
func (srv *adminService) CreateAccount(ctx context.Context, input *usecase.SignupInput) (*entity.Account, error) {
	srv.log(ctx).Info("Admin creating account", slog.String("email", input.Email), slog.String("role", input.Role))

	account, err := buildSignupAccount(input)
	if err != nil {
		return nil, err
	}
	account.Status = entity.StatusActive

	if err := srv.hasher.ValidatePolicy(input.Password); err != nil {
		return nil, domainerrors.ErrPasswordPolicy.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password for admin-created account")
	}
	account.PasswordHash = hashedPassword

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		srv.log(ctx).Warn("Admin account creation failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create account")
	}

	srv.log(ctx).Debug("Admin created account", slog.Any("accountID", account.ID))

	return account, nil
}

// UpdateAccount applies administrative changes, including role changes and
// status transitions. A role change takes effect on the target's next login;
// outstanding tokens keep the role they were issued with.
func (srv *adminService) UpdateAccount(ctx context.Context, accountID int64, input *usecase.UpdateAccountInput) (*entity.Account, error) {
	srv.log(ctx).Info("Admin updating account", slog.Any("accountID", accountID))

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account lookup failed")
			}

			return errors.Wrap(err, "failed to find account by id")
		}

		if err := applyAccountUpdate(account, input); err != nil {
			return err
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account")
		}
		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Admin account update failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account update transaction")
	}

	return updated, nil
}

func applyAccountUpdate(account *entity.Account, input *usecase.UpdateAccountInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < usecase.NameMinLength || len(name) > usecase.NameMaxLength {
			return domainerrors.ErrValidationFailed.WrapMessage("name length out of bounds")
		}
		account.Name = name
	}

	if input.Address != nil {
		address := strings.TrimSpace(*input.Address)
		if len(address) > usecase.AddressMaxLength {
			return domainerrors.ErrValidationFailed.WrapMessage("address length out of bounds")
		}
		account.Address = address
	}

	if input.Role != nil {
		role, ok := entity.ParseRole(*input.Role)
		if !ok {
			return errors.Wrap(domainerrors.ErrInvalidRole, "unknown role")
		}
		account.Role = role
	}

	if input.Status != nil {
		status, ok := entity.ParseStatus(*input.Status)
		if !ok {
			return errors.Wrap(domainerrors.ErrInvalidStatus, "unknown status")
		}
		account.Status = status
	}

	return nil
}

// DeleteAccount removes a non-administrator account and, via cascade, the
// stores and ratings hanging off it.
func (srv *adminService) DeleteAccount(ctx context.Context, accountID int64) error {
	srv.log(ctx).Info("Admin deleting account", slog.Any("accountID", accountID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "account lookup failed")
			}

			return errors.Wrap(err, "failed to find account by id")
		}

		if account.Role == entity.RoleAdmin {
			return errors.Wrap(domainerrors.ErrAdminUndeletable, "refusing to delete administrator")
		}

		if err := accountRepo.Delete(ctx, accountID); err != nil {
			return errors.Wrap(err, "failed to delete account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Admin account delete failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute account delete transaction")
	}

	return nil
}

// ListStores returns all stores, optionally filtered by search.
func (srv *adminService) ListStores(ctx context.Context, search string) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.List(ctx, repository.StoreFilter{Search: search})
	if err != nil {
		srv.log(ctx).Error("Failed to list stores", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list stores")
	}

	return stores, nil
}

// CreateStore lists a store on behalf of an owner account.
func (srv *adminService) CreateStore(ctx context.Context, input *usecase.AdminCreateStoreInput) (*entity.Store, error) {
	srv.log(ctx).Info("Admin creating store", slog.Any("ownerID", input.OwnerID), slog.String("name", input.Name))

	owner, err := srv.accountRepo.FindByID(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "owner lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find owner account")
	}
	if owner.Role != entity.RoleOwner {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("stores may only be assigned to owner accounts")
	}

	store, err := buildStore(&usecase.CreateStoreInput{
		Name:    input.Name,
		Email:   input.Email,
		Address: input.Address,
	}, input.OwnerID)
	if err != nil {
		return nil, err
	}

	if err := srv.storeRepo.Create(ctx, store); err != nil {
		srv.log(ctx).Error("Admin store creation failed", slog.Any("ownerID", input.OwnerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create store")
	}

	return store, nil
}

// UpdateStore modifies any store, without ownership scoping.
func (srv *adminService) UpdateStore(ctx context.Context, storeID int64, input *usecase.UpdateStoreInput) (*entity.Store, error) {
	srv.log(ctx).Info("Admin updating store", slog.Any("storeID", storeID))

	var updated *entity.Store
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		storeRepo := repoFactory.StoreRepo()

		store, err := storeRepo.FindByID(ctx, storeID)
		if err != nil {
			if errors.Is(err, repository.ErrStoreNotFound) {
				return errors.Wrap(domainerrors.ErrStoreNotFound, "store lookup failed")
			}

			return errors.Wrap(err, "failed to find store by id")
		}

		applyStoreUpdate(store, input)
		if store.Name == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("store name is required")
		}
		if len(store.Address) > usecase.AddressMaxLength {
			return domainerrors.ErrValidationFailed.WrapMessage("address length out of bounds")
		}

		if err := storeRepo.Update(ctx, store); err != nil {
			return errors.Wrap(err, "failed to update store")
		}
		updated = store

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Admin store update failed", slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute store update transaction")
	}

	return updated, nil
}

// DeleteStore removes any store.
func (srv *adminService) DeleteStore(ctx context.Context, storeID int64) error {
	srv.log(ctx).Info("Admin deleting store", slog.Any("storeID", storeID))

	if err := srv.storeRepo.Delete(ctx, storeID); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return errors.Wrap(domainerrors.ErrStoreNotFound, "store lookup failed")
		}

		srv.log(ctx).Error("Admin store delete failed", slog.Any("storeID", storeID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete store")
	}

	return nil
}

// ListRatings returns ratings, optionally scoped to one store.
func (srv *adminService) ListRatings(ctx context.Context, storeID int64) ([]*entity.Rating, error) {
	ratings, err := srv.ratingRepo.List(ctx, repository.RatingFilter{StoreID: storeID})
	if err != nil {
		srv.log(ctx).Error("Failed to list ratings", slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list ratings")
	}

	return ratings, nil
}

// DeleteRating removes any rating.
func (srv *adminService) DeleteRating(ctx context.Context, ratingID int64) error {
	srv.log(ctx).Info("Admin deleting rating", slog.Any("ratingID", ratingID))

	if err := srv.ratingRepo.Delete(ctx, ratingID); err != nil {
		if errors.Is(err, repository.ErrRatingNotFound) {
			return errors.Wrap(domainerrors.ErrRatingNotFound, "rating lookup failed")
		}

		srv.log(ctx).Error("Admin rating delete failed", slog.Any("ratingID", ratingID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete rating")
	}

	return nil
}

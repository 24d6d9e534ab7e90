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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	hasher      service.PasswordHasher
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for profileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		hasher:      params.Hasher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateProfile applies name/address changes to the caller's own account.
func (srv *profileService) UpdateProfile(ctx context.Context, accountID int64, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("accountID", accountID))

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := srv.findOwnAccount(ctx, accountRepo, accountID)
		if err != nil {
			return err
		}

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

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account profile")
		}
		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("accountID", accountID))

	return updated, nil
}

// ChangePassword rotates the caller's password after re-verifying the
// current one.
func (srv *profileService) ChangePassword(ctx context.Context, accountID int64, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing password", slog.Any("accountID", accountID))

	account, err := srv.findOwnAccount(ctx, srv.accountRepo, accountID)
	if err != nil {
		return err
	}

	if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected, current password mismatch", slog.Any("accountID", accountID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	if err := srv.hasher.ValidatePolicy(input.NewPassword); err != nil {
		srv.log(ctx).Warn("Password policy violated during password change", slog.Any("accountID", accountID))

		return domainerrors.ErrPasswordPolicy.WrapMessage(err.Error())
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash new password", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := srv.findOwnAccount(ctx, accountRepo, accountID)
		if err != nil {
			return err
		}

		account.PasswordHash = hashedPassword
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to store new password hash")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Password change failed", slog.Any("accountID", accountID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Debug("Password changed", slog.Any("accountID", accountID))

	return nil
}

// findOwnAccount loads the caller's own account. A valid token whose account
// no longer exists is not a session.
func (srv *profileService) findOwnAccount(ctx context.Context, accountRepo repository.AccountRepository, accountID int64) (*entity.Account, error) {
	account, err := accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "account behind token no longer exists")
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return account, nil
}

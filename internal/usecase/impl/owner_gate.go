package impl

import (
	"context"

	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/repository"

	"github.com/pkg/errors"
)

// requireManageableOwner gates owner write operations on the account's live
// status, so a deactivation or a still-pending approval takes effect
// immediately regardless of what the session token was issued with.
func requireManageableOwner(ctx context.Context, accountRepo repository.AccountRepository, ownerID int64) error {
	account, err := accountRepo.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrUnauthenticated, "owner account no longer exists")
		}

		return errors.Wrap(err, "failed to load owner account")
	}

	if account.CanManageOwnedResources() {
		return nil
	}

	if account.Status == entity.StatusPending {
		return errors.Wrap(domainerrors.ErrOwnerPending, "owner awaiting activation")
	}

	return errors.Wrap(domainerrors.ErrAccountInactive, "owner account deactivated")
}

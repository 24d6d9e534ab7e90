package usecase

import (
	"context"

	"ratehub/internal/domain/entity"
)

// --- Input DTOs ---

// UpdateProfileInput carries a partial self-service profile update. Nil
// fields are untouched. Email, role and status are deliberately absent:
// email is the login identifier and role/status changes are admin-only.
type UpdateProfileInput struct {
	Name    *string
	Address *string
}

// ChangePasswordInput defines the data required to rotate the caller's own
// password. The current password is re-verified even though the caller holds
// a valid session token.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
}

// ProfileUsecase defines the self-service operations an account holder may
// perform on their own account.
type ProfileUsecase interface {
	// UpdateProfile applies name/address changes to the caller's account.
	UpdateProfile(ctx context.Context, accountID int64, input *UpdateProfileInput) (*entity.Account, error)

	// ChangePassword verifies the current password, enforces the signup
	// password policy on the new one and stores its hash.
	ChangePassword(ctx context.Context, accountID int64, input *ChangePasswordInput) error
}

package handler

import (
	"log/slog"
	"net/http"

	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/response"
	"ratehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ProfileHandlerParams holds dependencies for ProfileHandler, injected by Fx.
type ProfileHandlerParams struct {
	fx.In

	ProfileUC usecase.ProfileUsecase
	Logger    *slog.Logger
}

// ProfileHandler serves the account holder's self-service profile operations.
type ProfileHandler struct {
	profileUC usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler.
func NewProfileHandler(params ProfileHandlerParams) *ProfileHandler {
	return &ProfileHandler{
		profileUC: params.ProfileUC,
		logger:    params.Logger,
	}
}

// UpdateProfileRequest represents a partial self-service profile update.
// Absent fields are left untouched.
type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=20,max=60"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

// ChangePasswordRequest represents the request body for rotating the
// caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// UpdateProfile applies name/address changes to the caller's own account.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.profileUC.UpdateProfile(c.Request().Context(), accountID, &usecase.UpdateProfileInput{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Profile updated successfully")
}

// ChangePassword rotates the caller's password. The current password is
// required even with a valid session.
func (h *ProfileHandler) ChangePassword(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.profileUC.ChangePassword(c.Request().Context(), accountID, &usecase.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

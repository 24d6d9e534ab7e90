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

// OwnerHandlerParams holds dependencies for OwnerHandler, injected by Fx.
type OwnerHandlerParams struct {
	fx.In

	StoreUC  usecase.StoreUsecase
	RatingUC usecase.RatingUsecase
	Logger   *slog.Logger
}

// OwnerHandler serves the store-owner operations: store management,
// dashboards and replies to ratings.
type OwnerHandler struct {
	storeUC  usecase.StoreUsecase
	ratingUC usecase.RatingUsecase
	logger   *slog.Logger
}

// NewOwnerHandler is the constructor for OwnerHandler.
func NewOwnerHandler(params OwnerHandlerParams) *OwnerHandler {
	return &OwnerHandler{
		storeUC:  params.StoreUC,
		ratingUC: params.RatingUC,
		logger:   params.Logger,
	}
}

// CreateStoreRequest represents the request body for listing a new store.
// The name bound mirrors the stores.name column width.
type CreateStoreRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=400"`
}

// UpdateStoreRequest represents a partial store update. Absent fields are
// left untouched.
type UpdateStoreRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Address *string `json:"address" validate:"omitempty,max=400"`
}

// ReplyRequest represents the request body for replying to a rating.
type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// OwnerDashboardView is the owner's per-store dashboard payload.
type OwnerDashboardView struct {
	Store        *StoreView    `json:"store"`
	Distribution map[int]int64 `json:"distribution"`
	Ratings      []*RatingView `json:"ratings"`
}

// CreateStore lists a new store for the calling owner.
func (h *OwnerHandler) CreateStore(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.storeUC.CreateStore(c.Request().Context(), accountID, &usecase.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newStoreView(store), "Store created successfully")
}

// ListStores returns the caller's own stores with rating aggregates.
func (h *OwnerHandler) ListStores(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	stores, err := h.storeUC.ListOwnStores(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newStoreViews(stores), "")
}

// UpdateStore modifies a store the caller owns.
func (h *OwnerHandler) UpdateStore(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.storeUC.UpdateStore(c.Request().Context(), accountID, storeID, &usecase.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newStoreView(store), "Store updated successfully")
}

// DeleteStore removes a store the caller owns.
func (h *OwnerHandler) DeleteStore(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.storeUC.DeleteStore(c.Request().Context(), accountID, storeID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Store deleted successfully")
}

// Dashboard returns the rating aggregates for a store the caller owns.
func (h *OwnerHandler) Dashboard(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	dashboard, err := h.storeUC.Dashboard(c.Request().Context(), accountID, storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	view := &OwnerDashboardView{
		Store:        newStoreView(dashboard.Store),
		Distribution: dashboard.Distribution,
		Ratings:      newRatingViews(dashboard.Ratings),
	}

	return response.Success(c, http.StatusOK, view, "")
}

// ListStoreRatings returns the ratings of a store the caller owns.
func (h *OwnerHandler) ListStoreRatings(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	ratings, err := h.ratingUC.ListForStore(c.Request().Context(), accountID, storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newRatingViews(ratings), "")
}

// Reply sets the owner's response on a rating of a store the caller owns.
func (h *OwnerHandler) Reply(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	ratingID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req ReplyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reply input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	rating, err := h.ratingUC.Reply(c.Request().Context(), accountID, ratingID, req.Reply)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newRatingView(rating), "Reply saved successfully")
}

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

// RatingHandlerParams holds dependencies for RatingHandler, injected by Fx.
type RatingHandlerParams struct {
	fx.In

	RatingUC usecase.RatingUsecase
	Logger   *slog.Logger
}

// RatingHandler serves the authenticated user's rating operations.
type RatingHandler struct {
	ratingUC usecase.RatingUsecase
	logger   *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler.
func NewRatingHandler(params RatingHandlerParams) *RatingHandler {
	return &RatingHandler{
		ratingUC: params.RatingUC,
		logger:   params.Logger,
	}
}

// SubmitRatingRequest represents the request body for rating a store.
type SubmitRatingRequest struct {
	StoreID int64  `json:"storeId" validate:"required,gt=0"`
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// UpdateRatingRequest represents a partial rating update. Absent fields are
// left untouched.
type UpdateRatingRequest struct {
	Score   *int    `json:"score" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// Submit creates a rating for a store on behalf of the caller.
func (h *RatingHandler) Submit(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	var req SubmitRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	rating, err := h.ratingUC.Submit(c.Request().Context(), accountID, &usecase.SubmitRatingInput{
		StoreID: req.StoreID,
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newRatingView(rating), "Rating submitted successfully")
}

// Update modifies a rating the caller authored.
func (h *RatingHandler) Update(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	ratingID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateRatingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid rating input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	rating, err := h.ratingUC.Update(c.Request().Context(), accountID, ratingID, &usecase.UpdateRatingInput{
		Score:   req.Score,
		Comment: req.Comment,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newRatingView(rating), "Rating updated successfully")
}

// Delete removes a rating the caller authored.
func (h *RatingHandler) Delete(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	ratingID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.ratingUC.Delete(c.Request().Context(), accountID, ratingID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating deleted successfully")
}

// ListOwn returns the caller's own ratings.
func (h *RatingHandler) ListOwn(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	ratings, err := h.ratingUC.ListOwn(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newRatingViews(ratings), "")
}

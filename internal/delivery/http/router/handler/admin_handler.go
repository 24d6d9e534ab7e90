package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"ratehub/internal/delivery/http/response"
	"ratehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	Logger  *slog.Logger
}

// AdminHandler serves the administrator-only operations.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	logger  *slog.Logger
}

// NewAdminHandler is the constructor for AdminHandler.
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		logger:  params.Logger,
	}
}

// AdminUpdateAccountRequest represents administrative account changes.
// Absent fields are left untouched.
type AdminUpdateAccountRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=20,max=60"`
	Address *string `json:"address" validate:"omitempty,max=400"`
	Role    *string `json:"role"`
	Status  *string `json:"status"`
}

// AdminCreateStoreRequest lists a store on behalf of an owner account.
type AdminCreateStoreRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"omitempty,max=400"`
	OwnerID int64  `json:"ownerId" validate:"required,gt=0"`
}

// PlatformDashboardView is the platform-wide counter payload.
type PlatformDashboardView struct {
	TotalUsers    int64 `json:"totalUsers"`
	TotalOwners   int64 `json:"totalOwners"`
	TotalStores   int64 `json:"totalStores"`
	TotalRatings  int64 `json:"totalRatings"`
	PendingOwners int64 `json:"pendingOwners"`
}

// Dashboard returns the platform-wide counters.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.adminUC.Dashboard(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	view := &PlatformDashboardView{
		TotalUsers:    dashboard.TotalUsers,
		TotalOwners:   dashboard.TotalOwners,
		TotalStores:   dashboard.TotalStores,
		TotalRatings:  dashboard.TotalRatings,
		PendingOwners: dashboard.PendingOwners,
	}

	return response.Success(c, http.StatusOK, view, "")
}

// ListAccounts returns accounts matching the role/status/search filters.
func (h *AdminHandler) ListAccounts(c echo.Context) error {
	accounts, err := h.adminUC.ListAccounts(c.Request().Context(), &usecase.ListAccountsInput{
		Role:   c.QueryParam("role"),
		Status: c.QueryParam("status"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountViews(accounts), "")
}

// GetAccount returns a single account.
func (h *AdminHandler) GetAccount(c echo.Context) error {
	accountID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	account, err := h.adminUC.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "")
}

// CreateAccount creates an account of any role. Owners created here start
// active, skipping the signup approval queue.
func (h *AdminHandler) CreateAccount(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.adminUC.CreateAccount(c.Request().Context(), &usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newAccountView(account), "Account created successfully")
}

// UpdateAccount applies administrative account changes.
func (h *AdminHandler) UpdateAccount(c echo.Context) error {
	accountID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req AdminUpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid account input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	account, err := h.adminUC.UpdateAccount(c.Request().Context(), accountID, &usecase.UpdateAccountInput{
		Name:    req.Name,
		Address: req.Address,
		Role:    req.Role,
		Status:  req.Status,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "Account updated successfully")
}

// DeleteAccount removes a non-administrator account.
func (h *AdminHandler) DeleteAccount(c echo.Context) error {
	accountID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteAccount(c.Request().Context(), accountID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

// ListStores returns all stores, optionally filtered by search.
func (h *AdminHandler) ListStores(c echo.Context) error {
	stores, err := h.adminUC.ListStores(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newStoreViews(stores), "")
}

// CreateStore lists a store on behalf of an owner account.
func (h *AdminHandler) CreateStore(c echo.Context) error {
	var req AdminCreateStoreRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid store input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	store, err := h.adminUC.CreateStore(c.Request().Context(), &usecase.AdminCreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, newStoreView(store), "Store created successfully")
}

// UpdateStore modifies any store.
func (h *AdminHandler) UpdateStore(c echo.Context) error {
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

	store, err := h.adminUC.UpdateStore(c.Request().Context(), storeID, &usecase.UpdateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newStoreView(store), "Store updated successfully")
}

// DeleteStore removes any store.
func (h *AdminHandler) DeleteStore(c echo.Context) error {
	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteStore(c.Request().Context(), storeID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Store deleted successfully")
}

// ListRatings returns ratings, optionally scoped to one store via the
// storeId query parameter.
func (h *AdminHandler) ListRatings(c echo.Context) error {
	var storeID int64
	if raw := c.QueryParam("storeId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return response.BadRequest(c, "VALIDATION_ERROR", "invalid storeId parameter")
		}
		storeID = parsed
	}

	ratings, err := h.adminUC.ListRatings(c.Request().Context(), storeID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newRatingViews(ratings), "")
}

// DeleteRating removes any rating.
func (h *AdminHandler) DeleteRating(c echo.Context) error {
	ratingID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.adminUC.DeleteRating(c.Request().Context(), ratingID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Rating deleted successfully")
}

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

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StoreUC usecase.StoreUsecase
	Logger  *slog.Logger
}

// StoreHandler serves the public store catalog.
type StoreHandler struct {
	storeUC usecase.StoreUsecase
	logger  *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler.
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storeUC: params.StoreUC,
		logger:  params.Logger,
	}
}

// Browse lists stores with rating aggregates. When the caller presents a
// valid token their own rating for each store rides along; anonymous
// callers get the same listing without it.
func (h *StoreHandler) Browse(c echo.Context) error {
	input := &usecase.BrowseStoresInput{
		Search: c.QueryParam("search"),
	}
	if accountID, ok := middleware.AccountID(c); ok {
		input.UserID = accountID
	}

	browsed, err := h.storeUC.Browse(c.Request().Context(), input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newBrowsedStoreViews(browsed), "")
}

package handler

import (
	"log/slog"
	"net/http"

	"ratehub/config"
	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/response"
	"ratehub/internal/delivery/http/session"
	"ratehub/internal/domain/service"
	"ratehub/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC   usecase.AuthUsecase
	TokenSvc service.TokenService
	Config   *config.Config
	Logger   *slog.Logger
}

// AuthHandler holds dependencies for the signup/login/logout/me handlers.
type AuthHandler struct {
	authUC       usecase.AuthUsecase
	tokenSvc     service.TokenService
	secureCookie bool
	logger       *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC:       params.AuthUC,
		tokenSvc:     params.TokenSvc,
		secureCookie: params.Config.IsProduction(),
		logger:       params.Logger,
	}
}

// SignupRequest represents the request body for creating an account.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=16"`
	Address  string `json:"address" validate:"omitempty,max=400"`
	Role     string `json:"role"` // case-insensitive; unknown roles rejected downstream
}

// LoginRequest represents the request body for logging in. Only presence is
// checked here: a malformed email must fail the same way as a wrong password,
// so no syntax validation happens before the credential check.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Signup handles account creation and signs the caller in.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	session.SetAuthCookie(c, output.Token, h.tokenSvc.TTL(), h.secureCookie)

	return response.Success(c, http.StatusCreated, newAccountView(output.Account), "Account created successfully")
}

// Login handles authentication and sets the session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	output, err := h.authUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	session.SetAuthCookie(c, output.Token, h.tokenSvc.TTL(), h.secureCookie)

	return response.Success(c, http.StatusOK, newAccountView(output.Account), "Logged in successfully")
}

// Logout clears the session cookie. Tokens are stateless so there is nothing
// to revoke server-side; logging out twice is still a success.
func (h *AuthHandler) Logout(c echo.Context) error {
	session.ClearAuthCookie(c, h.secureCookie)

	return response.Success(c, http.StatusOK, nil, "Logged out successfully")
}

// Me returns the live profile behind the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	accountID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "UNAUTHENTICATED", "Authentication required")
	}

	account, err := h.authUC.ValidateAccount(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, newAccountView(account), "")
}

package middleware

import (
	"ratehub/internal/delivery/http/session"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys populated by Authenticate for downstream handlers.
const (
	ContextKeyAccountID = "accountID"
	ContextKeyEmail     = "email"
	ContextKeyRole      = "role"
)

// AuthMiddleware provides middleware for session-token authentication and
// role authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the session token carried in the auth-token cookie
// (or a Bearer header for non-browser clients) and attaches the resolved
// identity to the request context. Missing, malformed, badly signed and
// expired tokens are all the same uniform unauthenticated outcome.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := session.TokenFromRequest(c)
		if tokenString == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("no session token presented")
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return err
		}

		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// OptionalAuthenticate attaches the identity when a valid token is present
// but lets anonymous requests through. Used by public endpoints that enrich
// their response for signed-in users.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := session.TokenFromRequest(c)
		if tokenString == "" {
			return next(c)
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			// A broken token on a public endpoint is treated as anonymous.
			return next(c)
		}

		c.Set(ContextKeyAccountID, claims.AccountID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated role.
// It must be used AFTER the Authenticate middleware. A wrong role is a
// permissions failure, distinct from the unauthenticated outcome.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return domainerrors.ErrForbidden.WrapMessage("role information missing from context")
			}

			if role != requiredRole {
				return domainerrors.ErrForbidden.WrapMessage("requires " + requiredRole.String() + " role")
			}

			return next(c)
		}
	}
}

// AccountID returns the authenticated account id set by Authenticate.
func AccountID(c echo.Context) (int64, bool) {
	id, ok := c.Get(ContextKeyAccountID).(int64)

	return id, ok
}

// Role returns the authenticated role set by Authenticate.
func Role(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(ContextKeyRole).(entity.Role)

	return role, ok
}

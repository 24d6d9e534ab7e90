package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratehub/internal/delivery/http/session"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/service"
	mockService "ratehub/internal/mocks/service"
)

func newAuthTestContext(req *http.Request) echo.Context {
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func validClaims() *service.Claims {
	return &service.Claims{
		AccountID: 7,
		Email:     "rated@example.com",
		Role:      entity.RoleUser,
	}
}

func TestAuthenticate_CookieToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("cookie-token").Return(validClaims(), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "cookie-token"})
	c := newAuthTestContext(req)

	err := NewAuthMiddleware(tokenSvc).Authenticate(okHandler)(c)
	require.NoError(t, err)

	accountID, ok := AccountID(c)
	require.True(t, ok)
	assert.Equal(t, int64(7), accountID)

	role, ok := Role(c)
	require.True(t, ok)
	assert.Equal(t, entity.RoleUser, role)
}

func TestAuthenticate_BearerToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("header-token").Return(validClaims(), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	c := newAuthTestContext(req)

	err := NewAuthMiddleware(tokenSvc).Authenticate(okHandler)(c)
	assert.NoError(t, err)
}

func TestAuthenticate_MissingToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)

	c := newAuthTestContext(httptest.NewRequest(http.MethodGet, "/api/me", nil))

	err := NewAuthMiddleware(tokenSvc).Authenticate(okHandler)(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestAuthenticate_RejectedToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("bad-token").
		Return(nil, domainerrors.ErrUnauthenticated.WrapMessage("session token rejected")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "bad-token"})
	c := newAuthTestContext(req)

	err := NewAuthMiddleware(tokenSvc).Authenticate(okHandler)(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestOptionalAuthenticate_Anonymous(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)

	c := newAuthTestContext(httptest.NewRequest(http.MethodGet, "/api/stores", nil))

	err := NewAuthMiddleware(tokenSvc).OptionalAuthenticate(okHandler)(c)
	require.NoError(t, err)

	_, ok := AccountID(c)
	assert.False(t, ok)
}

func TestOptionalAuthenticate_BrokenTokenIsAnonymous(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("stale-token").
		Return(nil, domainerrors.ErrUnauthenticated.WrapMessage("session token rejected")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "stale-token"})
	c := newAuthTestContext(req)

	err := NewAuthMiddleware(tokenSvc).OptionalAuthenticate(okHandler)(c)
	require.NoError(t, err)

	_, ok := AccountID(c)
	assert.False(t, ok)
}

func TestOptionalAuthenticate_ValidToken(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	tokenSvc.EXPECT().Validate("good-token").Return(validClaims(), nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/stores", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "good-token"})
	c := newAuthTestContext(req)

	err := NewAuthMiddleware(tokenSvc).OptionalAuthenticate(okHandler)(c)
	require.NoError(t, err)

	accountID, ok := AccountID(c)
	require.True(t, ok)
	assert.Equal(t, int64(7), accountID)
}

func TestRequireRole(t *testing.T) {
	tokenSvc := mockService.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	t.Run("matching role passes", func(t *testing.T) {
		c := newAuthTestContext(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
		c.Set(ContextKeyRole, entity.RoleAdmin)

		err := m.RequireRole(entity.RoleAdmin)(okHandler)(c)
		assert.NoError(t, err)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		c := newAuthTestContext(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))
		c.Set(ContextKeyRole, entity.RoleUser)

		err := m.RequireRole(entity.RoleAdmin)(okHandler)(c)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	})

	t.Run("missing role is forbidden", func(t *testing.T) {
		c := newAuthTestContext(httptest.NewRequest(http.MethodGet, "/api/admin/dashboard", nil))

		err := m.RequireRole(entity.RoleAdmin)(okHandler)(c)
		require.Error(t, err)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusForbidden, appErr.HTTPCode())
	})
}

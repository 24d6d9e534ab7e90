package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

func setCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func TestSetAuthCookie(t *testing.T) {
	c, rec := newTestContext(httptest.NewRequest(http.MethodPost, "/api/login", nil))

	SetAuthCookie(c, "signed-token", 24*time.Hour, false)

	cookie := setCookie(rec, CookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSetAuthCookie_SecureInProduction(t *testing.T) {
	c, rec := newTestContext(httptest.NewRequest(http.MethodPost, "/api/login", nil))

	SetAuthCookie(c, "signed-token", time.Hour, true)

	cookie := setCookie(rec, CookieName)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}

func TestClearAuthCookie(t *testing.T) {
	c, rec := newTestContext(httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	ClearAuthCookie(c, false)

	cookie := setCookie(rec, CookieName)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
}

func TestTokenFromRequest_PrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "cookie-token"})
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	c, _ := newTestContext(req)

	assert.Equal(t, "cookie-token", TokenFromRequest(c))
}

func TestTokenFromRequest_BearerFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer header-token")
	c, _ := newTestContext(req)

	assert.Equal(t, "header-token", TokenFromRequest(c))
}

func TestTokenFromRequest_Absent(t *testing.T) {
	c, _ := newTestContext(httptest.NewRequest(http.MethodGet, "/api/me", nil))

	assert.Empty(t, TokenFromRequest(c))
}

func TestTokenFromRequest_MalformedAuthorizationHeader(t *testing.T) {
	for _, header := range []string{"Bearer", "Bearer ", "Basic abc", "token"} {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set(echo.HeaderAuthorization, header)
		c, _ := newTestContext(req)

		assert.Empty(t, TokenFromRequest(c), "header %q", header)
	}
}

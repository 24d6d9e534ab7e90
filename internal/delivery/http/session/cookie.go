// Package session manages the auth-token cookie that carries the session
// token between browser and API. The token never travels anywhere else and is
// never readable by client-side script.
package session

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// CookieName is the session cookie. The frontend never reads it; it is
// http-only by design.
const CookieName = "auth-token"

// SetAuthCookie writes the session token into the auth-token cookie. The
// cookie lifetime mirrors the token TTL, and Secure is enabled outside of
// local development so the token never crosses plain HTTP in production.
func SetAuthCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the auth-token cookie. Safe to call repeatedly;
// clearing an absent cookie is a no-op.
func ClearAuthCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token, preferring the auth-token
// cookie and falling back to a Bearer Authorization header for non-browser
// clients. Returns an empty string when neither is present.
func TokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	const bearerPrefix = "Bearer "
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(authHeader) > len(bearerPrefix) && authHeader[:len(bearerPrefix)] == bearerPrefix {
		return authHeader[len(bearerPrefix):]
	}

	return ""
}

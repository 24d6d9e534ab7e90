package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/session"
	"ratehub/internal/delivery/http/validator"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	mockService "ratehub/internal/mocks/service"
	mockUsecase "ratehub/internal/mocks/usecase"
	"ratehub/internal/usecase"
)

func newAuthHandlerTest(t *testing.T) (*AuthHandler, *mockUsecase.MockAuthUsecase, *mockService.MockTokenService) {
	t.Helper()

	authUC := mockUsecase.NewMockAuthUsecase(t)
	tokenSvc := mockService.NewMockTokenService(t)

	h := &AuthHandler{
		authUC:   authUC,
		tokenSvc: tokenSvc,
	}

	return h, authUC, tokenSvc
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}

	return nil
}

func testAccount() *entity.Account {
	return &entity.Account{
		ID:           42,
		Name:         "Johnathan Maximilian Doe",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$secret",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	h, authUC, tokenSvc := newAuthHandlerTest(t)

	authUC.EXPECT().Signup(mock.Anything, &usecase.SignupInput{
		Name:     "Johnathan Maximilian Doe",
		Email:    "john@example.com",
		Password: "Valid@Pass1",
	}).Return(&usecase.AuthOutput{Account: testAccount(), Token: "signed-token"}, nil).Once()
	tokenSvc.EXPECT().TTL().Return(24 * time.Hour).Once()

	body := `{"name":"Johnathan Maximilian Doe","email":"john@example.com","password":"Valid@Pass1"}`
	c, rec := newJSONContext(http.MethodPost, "/api/signup", body)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	cookie := authCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)

	// The session token travels only in the cookie and the hash never leaves.
	assert.NotContains(t, rec.Body.String(), "signed-token")
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")
}

func TestAuthHandler_Signup_ShortNameRejectedAtBoundary(t *testing.T) {
	h, _, _ := newAuthHandlerTest(t)

	body := `{"name":"Shorty","email":"john@example.com","password":"Valid@Pass1"}`
	c, rec := newJSONContext(http.MethodPost, "/api/signup", body)

	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, authCookie(rec))
}

func TestAuthHandler_Login(t *testing.T) {
	h, authUC, tokenSvc := newAuthHandlerTest(t)

	authUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{
		Email:    "john@example.com",
		Password: "Valid@Pass1",
	}).Return(&usecase.AuthOutput{Account: testAccount(), Token: "signed-token"}, nil).Once()
	tokenSvc.EXPECT().TTL().Return(24 * time.Hour).Once()

	body := `{"email":"john@example.com","password":"Valid@Pass1"}`
	c, rec := newJSONContext(http.MethodPost, "/api/login", body)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := authCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	h, authUC, _ := newAuthHandlerTest(t)

	authUC.EXPECT().Login(mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")).Once()

	body := `{"email":"john@example.com","password":"WrongPass@1"}`
	c, rec := newJSONContext(http.MethodPost, "/api/login", body)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), domainerrors.ErrInvalidCredentials.Message())
	assert.Nil(t, authCookie(rec))
}

func TestAuthHandler_Login_MalformedEmailGetsUniformRejection(t *testing.T) {
	h, authUC, _ := newAuthHandlerTest(t)

	// A syntactically broken email reaches the credential check and fails
	// exactly like a wrong password, never as a validation error.
	authUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{
		Email:    "not-an-email",
		Password: "Valid@Pass1",
	}).Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")).Once()

	body := `{"email":"not-an-email","password":"Valid@Pass1"}`
	c, rec := newJSONContext(http.MethodPost, "/api/login", body)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), domainerrors.ErrInvalidCredentials.Message())
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	h, _, _ := newAuthHandlerTest(t)

	for range 2 {
		c, rec := newJSONContext(http.MethodPost, "/api/logout", "")

		require.NoError(t, h.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		cookie := authCookie(rec)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h, authUC, _ := newAuthHandlerTest(t)

	authUC.EXPECT().ValidateAccount(mock.Anything, int64(42)).Return(testAccount(), nil).Once()

	c, rec := newJSONContext(http.MethodGet, "/api/me", "")
	c.Set(middleware.ContextKeyAccountID, int64(42))

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "john@example.com")
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")
}

func TestAuthHandler_Me_MissingIdentity(t *testing.T) {
	h, _, _ := newAuthHandlerTest(t)

	c, rec := newJSONContext(http.MethodGet, "/api/me", "")

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

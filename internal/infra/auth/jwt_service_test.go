package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratehub/config"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
)

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		Auth: config.AuthConfig{SigningSecret: "test-signing-secret"},
	})
	require.NoError(t, err)

	concrete, ok := svc.(*jwtService)
	require.True(t, ok)

	return concrete
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)

	account := &entity.Account{
		ID:    42,
		Email: "grace.hopper@example.com",
		Role:  entity.RoleOwner,
	}

	token, err := svc.Generate(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.AccountID)
	assert.Equal(t, "grace.hopper@example.com", claims.Email)
	assert.Equal(t, entity.RoleOwner, claims.Role)
	assert.WithinDuration(t, time.Now().Add(svc.TTL()), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.Generate(&entity.Account{ID: 1, Email: "a@example.com", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(token + "x")
	assertUnauthenticated(t, err)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	svc := newTestJWTService(t)

	other, err := NewJWTService(&config.Config{
		Auth: config.AuthConfig{SigningSecret: "another-secret-entirely"},
	})
	require.NoError(t, err)

	token, err := other.Generate(&entity.Account{ID: 1, Email: "a@example.com", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assertUnauthenticated(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := newTestJWTService(t)

	expired := &jwtService{secret: svc.secret, ttl: -time.Minute}
	token, err := expired.Generate(&entity.Account{ID: 1, Email: "a@example.com", Role: entity.RoleUser})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assertUnauthenticated(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestJWTService(t)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Validate(token)
		assertUnauthenticated(t, err)
	}
}

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUnauthenticated.HTTPCode(), appErr.HTTPCode())
	assert.Equal(t, domainerrors.ErrUnauthenticated.ErrorCode(), appErr.ErrorCode())
}

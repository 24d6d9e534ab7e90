package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"ratehub/config"
	"ratehub/internal/domain/entity"
	domainerrors "ratehub/internal/domain/errors"
	"ratehub/internal/domain/service"
)

// sessionTTL is the fixed lifetime of a session token. The auth-token cookie
// carries the same max-age so both expire together.
const sessionTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using
// the JWT standard with an HS256 symmetric signing secret.
type jwtService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.Auth.SigningSecret == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.Auth.SigningSecret),
		ttl:    sessionTTL,
	}, nil
}

// Generate creates a signed session token carrying the account's identity
// claims: {sub, email, role, iat, exp}.
func (s *jwtService) Generate(account *entity.Account) (string, error) {
	now := time.Now()
	claims := &service.Claims{
		Email: account.Email,
		Role:  account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(account.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// Validate checks signature integrity and expiry. Every failure collapses
// into the uniform unauthenticated error so callers cannot distinguish a bad
// signature from an expired or malformed token.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("session token rejected")
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("malformed subject claim")
	}
	claims.AccountID = accountID

	if !claims.Role.IsValid() {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("unknown role claim")
	}

	return claims, nil
}

// TTL returns the fixed session token lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

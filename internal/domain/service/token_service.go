package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"ratehub/internal/domain/entity"
)

// Claims is the signed claim set carried by a session token. The role claim
// reflects the role at issuance time; a role change does not take effect
// until re-authentication.
type Claims struct {
	AccountID int64       `json:"-"`
	Email     string      `json:"email"`
	Role      entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session
// tokens. Tokens are stateless: nothing is persisted server-side.
type TokenService interface {
	// Generate creates a signed, time-boxed session token for the account.
	Generate(account *entity.Account) (string, error)

	// Validate checks signature integrity and expiry. Any failure (bad
	// signature, malformed token, expired) is a single uniform
	// unauthenticated outcome; callers cannot distinguish failure subtypes.
	Validate(tokenString string) (*Claims, error)

	// TTL returns the token lifetime, which the session cookie mirrors.
	TTL() time.Duration
}

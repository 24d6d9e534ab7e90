package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ratehub/config"
)

func newTestHasher() *bcryptHasher {
	// MinCost keeps the hashing tests fast.
	return &bcryptHasher{cost: bcrypt.MinCost}
}

func TestNewBcryptHasher_CostFallback(t *testing.T) {
	hasher, ok := NewBcryptHasher(&config.Config{
		Auth: config.AuthConfig{BcryptCost: 99},
	}).(*bcryptHasher)
	require.True(t, ok)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("Secur3Pass!")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Secur3Pass!", hash)

	assert.True(t, hasher.Check("Secur3Pass!", hash))
	assert.False(t, hasher.Check("secur3pass!", hash))
	assert.False(t, hasher.Check("Secur3Pass!", "not-a-bcrypt-hash"))
}

func TestBcryptHasher_ValidatePolicy(t *testing.T) {
	hasher := newTestHasher()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid", password: "Valid@Pass1", wantErr: false},
		{name: "valid at min length", password: "Abcdef!2", wantErr: false},
		{name: "valid at max length", password: "Abcdefghijklmn!2", wantErr: false},
		{name: "too short", password: "Ab!4567", wantErr: true},
		{name: "too long", password: "Abcdefghijklmno!2", wantErr: true},
		{name: "no uppercase", password: "valid@pass1", wantErr: true},
		{name: "no special", password: "ValidPass123", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePolicy(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

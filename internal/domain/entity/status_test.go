package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		ok    bool
	}{
		{input: "active", want: StatusActive, ok: true},
		{input: "PENDING", want: StatusPending, ok: true},
		{input: "Inactive", want: StatusInactive, ok: true},
		{input: "suspended", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultStatusFor(t *testing.T) {
	assert.Equal(t, StatusActive, DefaultStatusFor(RoleUser))
	assert.Equal(t, StatusPending, DefaultStatusFor(RoleOwner))
	assert.Equal(t, StatusActive, DefaultStatusFor(RoleAdmin))
}

func TestAccount_CanManageOwnedResources(t *testing.T) {
	assert.True(t, (&Account{Status: StatusActive}).CanManageOwnedResources())
	assert.False(t, (&Account{Status: StatusPending}).CanManageOwnedResources())
	assert.False(t, (&Account{Status: StatusInactive}).CanManageOwnedResources())
}

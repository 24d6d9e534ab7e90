package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input string
		want  Role
		ok    bool
	}{
		{input: "user", want: RoleUser, ok: true},
		{input: "OWNER", want: RoleOwner, ok: true},
		{input: "Admin", want: RoleAdmin, ok: true},
		{input: "  owner  ", want: RoleOwner, ok: true},
		{input: "superuser", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRole(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleOwner.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("merchant").IsValid())
	assert.False(t, Role("").IsValid())
}

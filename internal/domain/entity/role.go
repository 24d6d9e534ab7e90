package entity

import "strings"

// Role represents the type of role an account can have in the system.
// It is a closed enumeration: exactly one role per account, assigned at
// signup; only an administrator may change it afterwards.
type Role string

const (
	// RoleUser indicates a regular user who browses and rates stores.
	RoleUser Role = "user"
	// RoleOwner indicates a store owner managing listed stores.
	RoleOwner Role = "owner"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleOwner, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole normalizes case-insensitive input to the stored enumeration.
// Returns false when the input names no known role.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}

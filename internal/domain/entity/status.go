package entity

import "strings"

// Status is the account lifecycle flag, distinct from Role. Transitions are
// administrator-driven except the initial assignment at creation.
type Status string

const (
	// StatusActive indicates a fully usable account.
	StatusActive Status = "active"
	// StatusPending indicates an account awaiting administrative activation.
	StatusPending Status = "pending"
	// StatusInactive indicates an account deactivated by an administrator.
	StatusInactive Status = "inactive"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	return string(s)
}

// IsValid checks if the Status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPending, StatusInactive:
		return true
	default:
		return false
	}
}

// ParseStatus normalizes case-insensitive input to the stored enumeration.
func ParseStatus(str string) (Status, bool) {
	status := Status(strings.ToLower(strings.TrimSpace(str)))
	if !status.IsValid() {
		return "", false
	}

	return status, true
}

// DefaultStatusFor returns the status assigned at account creation.
// Owners start pending and require administrative activation before they
// gain write access to their owned resources.
func DefaultStatusFor(role Role) Status {
	if role == RoleOwner {
		return StatusPending
	}

	return StatusActive
}

// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Account is the core identity record in the system. It represents a regular
// user, a store owner, or an administrator, distinguished by Role.
type Account struct {
	ID           int64     // Unique numeric identifier, assigned by the database.
	Name         string    // Display name.
	Email        string    // Unique login identifier; uniqueness is case-insensitive.
	PasswordHash string    // bcrypt hash; never stored or transmitted in plaintext.
	Role         Role      // Exactly one role per account, assigned at signup.
	Status       Status    // Lifecycle flag, distinct from role.
	Address      string    // Optional postal address.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification.
}

// CanManageOwnedResources reports whether the account may write to resources
// it owns. OWNER accounts start PENDING and need administrative activation.
func (a *Account) CanManageOwnedResources() bool {
	return a.Status == StatusActive
}

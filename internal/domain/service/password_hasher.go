// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within
// a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (bcrypt), keeping the
// domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// ValidatePolicy checks the password against the composition policy:
	// length bounds, at least one uppercase character and at least one
	// special character. Returns a descriptive error on violation.
	ValidatePolicy(password string) error
}

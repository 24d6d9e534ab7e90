package entity

import "time"

// Store is a listed business owned by an OWNER account. Rating aggregates are
// computed from the ratings table at query time, never stored denormalized.
type Store struct {
	ID        int64     // Unique numeric identifier, assigned by the database.
	Name      string    // Store display name.
	Email     string    // Contact email for the store.
	Address   string    // Physical address shown to users.
	OwnerID   int64     // The account that owns this store.
	CreatedAt time.Time // Timestamp of when this store was listed.
	UpdatedAt time.Time // Timestamp of the last modification.

	// Aggregates populated by list/detail queries.
	AverageRating float64 // Mean score across all ratings, 0 when unrated.
	RatingCount   int64   // Number of ratings submitted for this store.
}

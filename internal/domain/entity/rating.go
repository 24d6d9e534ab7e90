package entity

import "time"

// Rating score bounds.
const (
	MinScore = 1
	MaxScore = 5
)

// Rating is a single user's review of a store. At most one rating exists per
// (store, user) pair, enforced by a database unique constraint.
type Rating struct {
	ID         int64     // Unique numeric identifier, assigned by the database.
	StoreID    int64     // The rated store.
	UserID     int64     // The account that authored this rating.
	Score      int       // 1..5 inclusive.
	Comment    string    // Optional free-text review.
	OwnerReply string    // Optional response from the store owner.
	CreatedAt  time.Time // Timestamp of when this rating was submitted.
	UpdatedAt  time.Time // Timestamp of the last modification.

	// Denormalized display fields populated by list queries.
	UserName  string // Author display name.
	StoreName string // Rated store name.
}

// ValidScore reports whether the score lies within the allowed bounds.
func ValidScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}

// RatingDistribution maps a score (1..5) to the number of ratings carrying it.
type RatingDistribution map[int]int64

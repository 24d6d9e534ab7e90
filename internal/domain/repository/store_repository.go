package repository

import (
	"context"
	"errors"

	"ratehub/internal/domain/entity"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreFilter narrows store listings. Zero values mean "no restriction".
type StoreFilter struct {
	OwnerID int64
	Search  string // matches name or address, case-insensitive substring
}

// StoreRepository defines the standard operations for store persistence.
// Listing methods populate the rating aggregates on the returned entities.
type StoreRepository interface {
	// Create persists a new store.
	Create(ctx context.Context, store *entity.Store) error

	// FindByID retrieves a single store with its rating aggregates.
	FindByID(ctx context.Context, id int64) (*entity.Store, error)

	// Update modifies an existing store.
	Update(ctx context.Context, store *entity.Store) error

	// Delete removes a store and, via cascade, its ratings.
	Delete(ctx context.Context, id int64) error

	// List returns stores matching the filter with rating aggregates,
	// newest first.
	List(ctx context.Context, filter StoreFilter) ([]*entity.Store, error)

	// Count returns the number of stores matching the filter.
	Count(ctx context.Context, filter StoreFilter) (int64, error)
}

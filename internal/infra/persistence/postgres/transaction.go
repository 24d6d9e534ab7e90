package postgres

import (
	"context"
	"fmt"

	"ratehub/internal/domain/repository"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface
// using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds one GORM transaction object and builds repository instances bound
// to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// AccountRepo returns an account repository bound to the transaction.
func (f *gormRepositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

// StoreRepo returns a store repository bound to the transaction.
func (f *gormRepositoryFactory) StoreRepo() repository.StoreRepository {
	return NewStoreRepository(f.tx)
}

// RatingRepo returns a rating repository bound to the transaction.
func (f *gormRepositoryFactory) RatingRepo() repository.RatingRepository {
	return NewRatingRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	// A panic inside the callback must never leave the transaction open.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction rollback failed: %v (original error: %w)", rbErr, err)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

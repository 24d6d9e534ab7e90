package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create account")))
	assert.True(t, isUniqueConstraintViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_accounts_email" (SQLSTATE 23505)`)))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))
	assert.False(t, isUniqueConstraintViolation(gorm.ErrRecordNotFound))
}

func TestIsForeignKeyConstraintViolation(t *testing.T) {
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyConstraintViolation(errors.New(`ERROR: insert or update on table "ratings" violates foreign key constraint (SQLSTATE 23503)`)))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("connection refused")))
}

func TestIsCheckConstraintViolation(t *testing.T) {
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
	assert.True(t, isCheckConstraintViolation(errors.New(`ERROR: new row for relation "ratings" violates check constraint "chk_ratings_score" (SQLSTATE 23514)`)))
	assert.False(t, isCheckConstraintViolation(errors.New("connection refused")))
}

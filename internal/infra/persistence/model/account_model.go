// Package model holds the GORM persistence models mirroring the database
// tables, kept separate from the pure domain entities.
package model

import (
	"time"
)

// AccountModel mirrors the 'accounts' table. Email uniqueness is enforced
// case-insensitively by a unique index on lower(email) created in the
// migrations, not by a GORM tag.
type AccountModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(60);not null"`
	Email        string `gorm:"type:varchar(255);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(10);not null"`
	Status       string `gorm:"type:varchar(10);not null"`
	Address      string `gorm:"type:varchar(400)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Stores  []StoreModel  `gorm:"foreignKey:OwnerID"`
	Ratings []RatingModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

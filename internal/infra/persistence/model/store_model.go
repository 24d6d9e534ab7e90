package model

import "time"

// StoreModel mirrors the 'stores' table.
type StoreModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(100);not null"`
	Email     string `gorm:"type:varchar(255)"`
	Address   string `gorm:"type:varchar(400)"`
	OwnerID   int64  `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Ratings []RatingModel `gorm:"foreignKey:StoreID"`
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

// StoreWithStatsModel is the scan target for store listings joined with
// rating aggregates.
type StoreWithStatsModel struct {
	StoreModel
	AverageRating float64
	RatingCount   int64
}

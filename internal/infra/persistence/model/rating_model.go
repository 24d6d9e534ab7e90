package model

import "time"

// RatingModel mirrors the 'ratings' table. The unique index on
// (store_id, user_id) enforcing one rating per user per store lives in the
// migrations.
type RatingModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	StoreID    int64  `gorm:"not null;index"`
	UserID     int64  `gorm:"not null;index"`
	Score      int    `gorm:"not null"`
	Comment    string `gorm:"type:text"`
	OwnerReply string `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}

// RatingWithNamesModel is the scan target for rating listings joined with
// the author and store display names.
type RatingWithNamesModel struct {
	RatingModel
	UserName  string
	StoreName string
}

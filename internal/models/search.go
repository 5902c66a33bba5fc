package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxTermLength is the longest search term the API accepts, after trimming.
const MaxTermLength = 100

// SearchRecord is an immutable log entry for a submitted search. Records are
// written once per validated search submission and never updated; the only
// delete path is the owner clearing their history in bulk.
type SearchRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index;index:idx_searches_user_ts,priority:1" json:"-"`
	User      User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Term      string    `gorm:"not null;size:100;index" json:"term"`
	Timestamp time.Time `gorm:"not null;index:idx_searches_user_ts,priority:2,sort:desc" json:"timestamp"`
}

// BeforeCreate defaults the timestamp to server-observed creation time.
func (r *SearchRecord) BeforeCreate(tx *gorm.DB) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}
	return nil
}

// TableName keeps the table name aligned with the migration files.
func (SearchRecord) TableName() string {
	return "searches"
}

// TermCount is one row of the trending-terms aggregation.
type TermCount struct {
	Term  string `json:"term"`
	Count int64  `json:"count"`
}

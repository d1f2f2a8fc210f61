package models

import (
	"time"
)

// Activity is the append-only audit trail. Rows are written alongside every
// state-changing action and never updated.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Action    string    `gorm:"size:255;not null" json:"action"`
	Status    string    `gorm:"size:32;not null" json:"status"`
}

// TableName overrides the table name
func (Activity) TableName() string {
	return "activities"
}

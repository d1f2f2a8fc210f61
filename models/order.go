package models

import (
	"time"
)

// Order statuses. Amount is fixed at creation; only status and the
// fulfillment code change afterwards, via the admin endpoints.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusRejected  = "rejected"
)

type Order struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	UserID           uint      `gorm:"not null;index" json:"userId"`
	PhoneNumberID    uint      `gorm:"not null" json:"phoneNumberId"`
	TotalAmount      float64   `gorm:"not null" json:"totalAmount"`
	IsReferralReward bool      `gorm:"default:false" json:"isReferralReward"`
	Status           string    `gorm:"size:20;default:'pending'" json:"status"` // pending, completed, rejected
	Code             string    `gorm:"size:64" json:"code"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

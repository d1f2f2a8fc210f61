package models

import (
	"time"
)

// Payment statuses. A payment with no order is a balance top-up; completing
// it credits the user's balance.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusRejected  = "rejected"
)

type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	OrderID   *uint     `gorm:"index" json:"orderId"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Reference string    `gorm:"uniqueIndex;size:32;not null" json:"reference"`
	Status    string    `gorm:"size:20;default:'pending'" json:"status"` // pending, completed, rejected
}

// TableName overrides the table name
func (Payment) TableName() string {
	return "payments"
}

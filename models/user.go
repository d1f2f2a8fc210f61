package models

import (
	"time"

	"gorm.io/gorm"
)

// KYC statuses carried on the user record.
const (
	KycStatusNone     = "none"
	KycStatusPending  = "pending"
	KycStatusApproved = "approved"
	KycStatusRejected = "rejected"
)

type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Email         string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Username      string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Password      string         `gorm:"size:255;not null" json:"-"`
	Balance       float64        `gorm:"not null;default:0" json:"balance"`
	ReferralCode  string         `gorm:"uniqueIndex;size:16;not null" json:"referralCode"`
	ReferredBy    string         `gorm:"size:16" json:"referredBy"`
	ReferralCount int            `gorm:"not null;default:0" json:"referralCount"`
	KycStatus     string         `gorm:"size:20;default:'none'" json:"kycStatus"` // none, pending, approved, rejected
	IsAdmin       bool           `gorm:"default:false" json:"isAdmin"`
	IsBanned      bool           `gorm:"default:false" json:"isBanned"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

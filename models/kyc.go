package models

import (
	"time"
)

type Kyc struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	UserID         uint      `gorm:"not null;index" json:"userId"`
	FullName       string    `gorm:"size:255;not null" json:"fullName"`
	DocumentType   string    `gorm:"size:64;not null" json:"documentType"`
	DocumentNumber string    `gorm:"size:64" json:"documentNumber"`
	FrontImage     string    `gorm:"size:500" json:"frontImage"`
	BackImage      string    `gorm:"size:500" json:"backImage"`
	Selfie         string    `gorm:"size:500" json:"selfie"`
	Status         string    `gorm:"size:20;default:'pending'" json:"status"` // pending, approved, rejected
}

// TableName overrides the table name
func (Kyc) TableName() string {
	return "kyc_records"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type PhoneNumber struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Number      string         `gorm:"size:32;not null" json:"number"`
	Country     string         `gorm:"size:64;not null" json:"country"`
	Price       float64        `gorm:"not null" json:"price"`
	IsAvailable bool           `gorm:"default:true" json:"isAvailable"`
}

// TableName overrides the table name
func (PhoneNumber) TableName() string {
	return "phone_numbers"
}

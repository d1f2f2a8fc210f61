package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

type Product struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	UserID          uint           `gorm:"not null;index" json:"userId"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Price           float64        `gorm:"not null" json:"price"`
	ImageURL        string         `gorm:"size:500" json:"imageUrl"`
	Status          string         `gorm:"size:20;default:'active'" json:"status"`
	IsAdminApproved bool           `gorm:"default:false" json:"isAdminApproved"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

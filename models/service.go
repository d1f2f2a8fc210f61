package models

import (
	"time"
)

type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:128;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:255" json:"icon"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
}

// TableName overrides the table name
func (Service) TableName() string {
	return "services"
}

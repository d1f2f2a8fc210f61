package models

import (
	"time"
)

type Country struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;size:4;not null" json:"code"`
	Flag      string    `gorm:"size:255" json:"flag"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
}

// TableName overrides the table name
func (Country) TableName() string {
	return "countries"
}

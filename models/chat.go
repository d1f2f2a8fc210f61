package models

import (
	"time"
)

// ChatMessage is one exchange with the keyword assistant, persisted as a log.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Response  string    `gorm:"type:text;not null" json:"response"`
}

// TableName overrides the table name
func (ChatMessage) TableName() string {
	return "chat_messages"
}

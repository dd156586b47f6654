package models

import "time"

// Message is one entry in a request's chat transcript. The list is
// append-only and ordered by insertion; messages are never edited or removed.
type Message struct {
	ID               string    `json:"id" gorm:"primaryKey;size:64"`
	ServiceRequestID string    `json:"-" gorm:"size:64;not null;index"`
	SenderID         string    `json:"senderId" gorm:"size:64;not null"`
	Text             string    `json:"text" gorm:"type:text;not null"`
	Timestamp        time.Time `json:"timestamp" gorm:"not null"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

// MessageSend represents the request structure for sending a chat message
type MessageSend struct {
	Text string `json:"text" binding:"required"`
}

package models

import (
	"time"
)

// Message is a single chat message. Conversations are not stored entities:
// ConversationID is the derived pairwise key, so it stays a plain string
// instead of a foreign key.
type Message struct {
	ID             string    `gorm:"size:36;primary_key" json:"id"`
	ConversationID string    `gorm:"size:100;not null;index:idx_messages_conversation_time,priority:1" json:"conversationId"`
	SenderID       string    `gorm:"size:64;not null" json:"senderId"`
	SenderName     string    `gorm:"size:255;not null" json:"senderName"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `gorm:"index:idx_messages_conversation_time,priority:2" json:"timestamp"`
}

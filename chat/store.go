package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jkamau589/pet_haven/models"
	"gorm.io/gorm"
)

const anonymousSender = "Anonymous"

// Store is the append-only message log. Messages are never edited or
// deleted here; retrieval is always ordered by creation time.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Append validates and persists one message, assigning its id and server
// timestamp. SenderName is a denormalized snapshot; when it is blank the
// fixed placeholder is stored instead.
func (s *Store) Append(conversationID, senderID, senderName, text string) (*models.Message, error) {
	switch {
	case strings.TrimSpace(conversationID) == "":
		return nil, &ValidationError{Field: "conversationId"}
	case strings.TrimSpace(senderID) == "":
		return nil, &ValidationError{Field: "senderId"}
	case strings.TrimSpace(text) == "":
		return nil, &ValidationError{Field: "text"}
	}

	if strings.TrimSpace(senderName) == "" {
		senderName = anonymousSender
	}

	msg := models.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderName:     senderName,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, &StorageError{Op: "append", Err: err}
	}
	return &msg, nil
}

// ListSince returns the conversation's messages in ascending timestamp
// order. A non-zero since returns only messages strictly after it, so an
// incremental poll never re-delivers the boundary message. An unknown
// conversation yields an empty slice, not an error.
func (s *Store) ListSince(conversationID string, since time.Time) ([]models.Message, error) {
	q := s.db.Where("conversation_id = ?", conversationID)
	if !since.IsZero() {
		q = q.Where("created_at > ?", since)
	}

	var messages []models.Message
	if err := q.Order("created_at asc").Find(&messages).Error; err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	return messages, nil
}

// ListConversationIDs returns the distinct set of conversation ids with at
// least one message. Participant discovery filters this client side.
func (s *Store) ListConversationIDs() ([]string, error) {
	var ids []string
	err := s.db.Model(&models.Message{}).
		Distinct("conversation_id").
		Order("conversation_id asc").
		Pluck("conversation_id", &ids).Error
	if err != nil {
		return nil, &StorageError{Op: "list conversations", Err: err}
	}
	return ids, nil
}

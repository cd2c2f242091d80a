package websocket

import "github.com/jkamau589/pet_haven/models"

// Client -> server events.
const (
	EventUserJoin          = "user_join"
	EventJoinConversation  = "join_conversation"
	EventLeaveConversation = "leave_conversation"
	EventSendMessage       = "send_message"
	EventUserTyping        = "user_typing"
	EventUserStopTyping    = "user_stop_typing"
)

// Server -> client events.
const (
	EventActiveUsers     = "active_users"
	EventMessageAck      = "message_ack"
	EventReceiveMessage  = "receive_message"
	EventMessageError    = "message_error"
	EventTypingIndicator = "typing_indicator"
)

// Envelope is the flat JSON frame read off the wire. Only the fields
// relevant to the named event are populated.
type Envelope struct {
	Event          string `json:"event"`
	AckID          string `json:"ackId,omitempty"`
	UserID         string `json:"userId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	SenderName     string `json:"senderName,omitempty"`
	Text           string `json:"text,omitempty"`
}

type ActiveUsersEvent struct {
	Event string   `json:"event"`
	Users []string `json:"users"`
}

type MessageAckEvent struct {
	Event   string          `json:"event"`
	AckID   string          `json:"ackId,omitempty"`
	Success bool            `json:"success"`
	Message *models.Message `json:"message,omitempty"`
}

type ReceiveMessageEvent struct {
	Event   string          `json:"event"`
	Message *models.Message `json:"message"`
}

type MessageErrorEvent struct {
	Event string `json:"event"`
	AckID string `json:"ackId,omitempty"`
	Error string `json:"error"`
}

type TypingIndicatorEvent struct {
	Event          string `json:"event"`
	ConversationID string `json:"conversationId"`
	SenderName     string `json:"senderName,omitempty"`
	IsTyping       bool   `json:"isTyping"`
}

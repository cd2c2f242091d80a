package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/jkamau589/pet_haven/chat"
	"github.com/jkamau589/pet_haven/database"
	"github.com/gofiber/fiber/v2"
)

type SendMessageRequest struct {
	ConversationID string `json:"conversationId" validate:"required"`
	SenderID       string `json:"senderId" validate:"required"`
	SenderName     string `json:"senderName"`
	Text           string `json:"text" validate:"required"`
}

// GetChatMessages returns a conversation's messages, optionally only those
// strictly after the since timestamp (epoch milliseconds). An unknown
// conversation returns an empty list.
func GetChatMessages(c *fiber.Ctx) error {
	conversationID := c.Query("conversationId")
	if conversationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "conversationId is required"})
	}

	var since time.Time
	if raw := c.Query("since"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "since must be epoch milliseconds"})
		}
		since = time.UnixMilli(ms)
	}

	store := chat.NewStore(database.DB)
	messages, err := store.ListSince(conversationID, since)
	if err != nil {
		log.Printf("Failed to list messages for %s: %v", conversationID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	return c.JSON(fiber.Map{
		"messages":  messages,
		"timestamp": time.Now().UnixMilli(),
	})
}

// PostChatMessage persists one message over REST. This is the fallback
// path; the primary path is the send_message socket event.
func PostChatMessage(c *fiber.Ctx) error {
	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	store := chat.NewStore(database.DB)
	msg, err := store.Append(req.ConversationID, req.SenderID, req.SenderName, req.Text)
	if err != nil {
		var validationErr *chat.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Error()})
		}
		log.Printf("Failed to save message: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetChatConversations returns every distinct conversation id system wide.
// Clients filter to their own by participant containment.
func GetChatConversations(c *fiber.Ctx) error {
	store := chat.NewStore(database.DB)
	ids, err := store.ListConversationIDs()
	if err != nil {
		log.Printf("Failed to list conversations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	return c.JSON(fiber.Map{"conversations": ids})
}

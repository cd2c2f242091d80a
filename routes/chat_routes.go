package routes

import (
	"github.com/jkamau589/pet_haven/handlers"
	"github.com/jkamau589/pet_haven/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	chat := api.Group("/chat", middleware.Protected())
	chat.Get("", handlers.GetChatMessages)
	chat.Post("", handlers.PostChatMessage)
	chat.Get("/conversations", handlers.GetChatConversations)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocket.New(handlers.ServeWs))
}

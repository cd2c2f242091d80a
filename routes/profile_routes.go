package routes

import (
	"github.com/jkamau589/pet_haven/handlers"
	"github.com/jkamau589/pet_haven/middleware"
	"github.com/gofiber/fiber/v2"
)

func ProfileRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	profile := api.Group("/profile", middleware.Protected())
	profile.Get("/me", handlers.GetProfile)
	profile.Put("/me", handlers.UpdateProfile)
	profile.Get("/:userId", handlers.GetPublicProfile)
}

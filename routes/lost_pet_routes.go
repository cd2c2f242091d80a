package routes

import (
	"github.com/jkamau589/pet_haven/handlers"
	"github.com/jkamau589/pet_haven/middleware"
	"github.com/gofiber/fiber/v2"
)

func LostPetRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/lost-pets")
	reports.Get("", handlers.ListLostReports)
	reports.Get("/:reportId", handlers.GetLostReport)

	authed := api.Group("/lost-pets", middleware.Protected())
	authed.Post("", handlers.CreateLostReport)
	authed.Post("/:reportId/resolve", handlers.ResolveLostReport)
}

package routes

import (
	"github.com/jkamau589/pet_haven/handlers"
	"github.com/jkamau589/pet_haven/middleware"
	"github.com/gofiber/fiber/v2"
)

func PetRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	pets := api.Group("/pets")
	pets.Get("", handlers.ListPets)
	pets.Get("/:petId", handlers.GetPet)

	authed := api.Group("/pets", middleware.Protected())
	authed.Post("", handlers.CreatePet)
	authed.Put("/:petId", handlers.UpdatePet)
	authed.Post("/:petId/adopt", handlers.MarkPetAdopted)
}

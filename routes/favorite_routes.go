package routes

import (
	"github.com/jkamau589/pet_haven/handlers"
	"github.com/jkamau589/pet_haven/middleware"
	"github.com/gofiber/fiber/v2"
)

func FavoriteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	favorites := api.Group("/favorites", middleware.Protected())
	favorites.Get("", handlers.ListFavorites)
	favorites.Post("/:petId", handlers.AddFavorite)
	favorites.Delete("/:petId", handlers.RemoveFavorite)
}

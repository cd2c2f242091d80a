package handlers

import (
	"github.com/jkamau589/pet_haven/database"
	"github.com/jkamau589/pet_haven/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func ListFavorites(c *fiber.Ctx) error {
	var favorites []models.Favorite
	err := database.DB.
		Preload("Pet").
		Where("user_id = ?", currentUserID(c)).
		Order("created_at desc").
		Find(&favorites).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch favorites"})
	}
	return c.JSON(favorites)
}

func AddFavorite(c *fiber.Ctx) error {
	petID, err := uuid.Parse(c.Params("petId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	var pet models.Pet
	if err := database.DB.First(&pet, "id = ?", petID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	}

	favorite := models.Favorite{UserID: currentUserID(c), PetID: petID}
	if err := database.DB.Create(&favorite).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already favorited"})
	}
	return c.Status(fiber.StatusCreated).JSON(favorite)
}

func RemoveFavorite(c *fiber.Ctx) error {
	result := database.DB.
		Where("user_id = ? AND pet_id = ?", currentUserID(c), c.Params("petId")).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to remove favorite"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Favorite not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

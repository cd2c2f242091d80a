package handlers

import (
	"log"
	"strconv"

	"github.com/jkamau589/pet_haven/database"
	"github.com/jkamau589/pet_haven/models"
	"github.com/jkamau589/pet_haven/services"
	"github.com/jkamau589/pet_haven/utils"
	"github.com/gofiber/fiber/v2"
)

type CreatePetRequest struct {
	Name        string  `json:"name" validate:"required,min=2"`
	Species     string  `json:"species" validate:"required"`
	Breed       *string `json:"breed"`
	AgeMonths   *int    `json:"age_months" validate:"omitempty,gte=0"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=male female"`
	Description string  `json:"description"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
}

func CreatePet(c *fiber.Ctx) error {
	var req CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	refCode, err := utils.GenerateUniqueReferenceCode(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate reference code"})
	}

	pet := models.Pet{
		ReferenceCode: refCode,
		Name:          req.Name,
		Species:       req.Species,
		Breed:         req.Breed,
		AgeMonths:     req.AgeMonths,
		Gender:        req.Gender,
		Description:   req.Description,
		PhotoURL:      req.PhotoURL,
		Status:        models.PetStatusAvailable,
		OwnerID:       currentUserID(c),
	}
	if err := database.DB.Create(&pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create listing"})
	}

	return c.Status(fiber.StatusCreated).JSON(pet)
}

func ListPets(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	q := database.DB.Model(&models.Pet{})
	if species := c.Query("species"); species != "" {
		q = q.Where("species = ?", species)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	} else {
		q = q.Where("status = ?", models.PetStatusAvailable)
	}

	var pets []models.Pet
	if err := q.Order("created_at desc").Limit(pageSize).Offset(offset).Find(&pets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch listings"})
	}
	return c.JSON(pets)
}

func GetPet(c *fiber.Ctx) error {
	var pet models.Pet
	if err := database.DB.First(&pet, "id = ?", c.Params("petId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found"})
	}
	return c.JSON(pet)
}

type UpdatePetRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=2"`
	Description *string `json:"description"`
	PhotoURL    *string `json:"photo_url" validate:"omitempty,url"`
	Status      *string `json:"status" validate:"omitempty,oneof=available pending adopted"`
}

func UpdatePet(c *fiber.Ctx) error {
	var req UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pet models.Pet
	if err := database.DB.First(&pet, "id = ? AND owner_id = ?", c.Params("petId"), currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found or you are not the owner"})
	}

	if req.Name != nil {
		pet.Name = *req.Name
	}
	if req.Description != nil {
		pet.Description = *req.Description
	}
	if req.PhotoURL != nil {
		pet.PhotoURL = req.PhotoURL
	}
	if req.Status != nil {
		pet.Status = *req.Status
	}

	if err := database.DB.Save(&pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update listing"})
	}
	return c.JSON(pet)
}

type AdoptPetRequest struct {
	AdopterID string `json:"adopter_id" validate:"required,uuid"`
}

// MarkPetAdopted closes a listing: status flips to adopted, an adoption
// record is written and the certificate is generated in the background.
func MarkPetAdopted(c *fiber.Ctx) error {
	var req AdoptPetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var pet models.Pet
	if err := database.DB.First(&pet, "id = ? AND owner_id = ?", c.Params("petId"), currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Pet not found or you are not the owner"})
	}
	if pet.Status == models.PetStatusAdopted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Pet is already adopted"})
	}

	var adopter models.User
	if err := database.DB.First(&adopter, "id = ?", req.AdopterID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Adopter not found"})
	}

	pet.Status = models.PetStatusAdopted
	if err := database.DB.Save(&pet).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update listing"})
	}

	record := models.AdoptionRecord{
		PetID:     pet.ID,
		AdopterID: adopter.ID,
		AdoptedAt: pet.UpdatedAt,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		log.Printf("Failed to create adoption record for pet %s: %v", pet.ID, err)
	} else {
		go services.GenerateAdoptionCertificate(record, pet, adopter)
	}

	return c.JSON(pet)
}

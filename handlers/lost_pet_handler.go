package handlers

import (
	"strconv"
	"time"

	"github.com/jkamau589/pet_haven/database"
	"github.com/jkamau589/pet_haven/models"
	"github.com/gofiber/fiber/v2"
)

type CreateLostReportRequest struct {
	PetName      string     `json:"pet_name" validate:"required,min=1"`
	Species      string     `json:"species" validate:"required"`
	Breed        *string    `json:"breed"`
	Description  string     `json:"description"`
	PhotoURL     *string    `json:"photo_url" validate:"omitempty,url"`
	LastSeenArea string     `json:"last_seen_area" validate:"required"`
	LastSeenAt   *time.Time `json:"last_seen_at"`
}

func CreateLostReport(c *fiber.Ctx) error {
	var req CreateLostReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lastSeen := time.Now()
	if req.LastSeenAt != nil {
		lastSeen = *req.LastSeenAt
	}

	report := models.LostPetReport{
		PetName:      req.PetName,
		Species:      req.Species,
		Breed:        req.Breed,
		Description:  req.Description,
		PhotoURL:     req.PhotoURL,
		LastSeenArea: req.LastSeenArea,
		LastSeenAt:   lastSeen,
		Status:       models.LostReportOpen,
		ReporterID:   currentUserID(c),
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create report"})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func ListLostReports(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	q := database.DB.Model(&models.LostPetReport{}).Where("status = ?", c.Query("status", models.LostReportOpen))
	if species := c.Query("species"); species != "" {
		q = q.Where("species = ?", species)
	}

	var reports []models.LostPetReport
	if err := q.Order("last_seen_at desc").Limit(pageSize).Offset(offset).Find(&reports).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reports"})
	}
	return c.JSON(reports)
}

func GetLostReport(c *fiber.Ctx) error {
	var report models.LostPetReport
	if err := database.DB.First(&report, "id = ?", c.Params("reportId")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}
	return c.JSON(report)
}

func ResolveLostReport(c *fiber.Ctx) error {
	var report models.LostPetReport
	if err := database.DB.First(&report, "id = ? AND reporter_id = ?", c.Params("reportId"), currentUserID(c)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found or you are not the reporter"})
	}

	report.Status = models.LostReportResolved
	if err := database.DB.Save(&report).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update report"})
	}
	return c.JSON(report)
}

package handlers

import (
	"log"

	"school_backend/database"
	"school_backend/models"
	"school_backend/services"

	"github.com/gofiber/fiber/v2"
)

// RequestReportCard kicks off PDF generation for a student. The render and
// upload take seconds, so the work happens in the background and clients poll
// ListReportCards for the result.
func RequestReportCard(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	var detail models.StudentDetail
	if err := database.DB.First(&detail, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	go func() {
		if _, err := services.GenerateReportCard(studentID); err != nil {
			log.Printf("🔥 Report card generation failed for student %s: %v", studentID, err)
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"message": "Report card generation started"})
}

func ListReportCards(c *fiber.Ctx) error {
	studentID := c.Params("studentId")
	var cards []models.ReportCard
	err := database.DB.Where("student_id = ?", studentID).
		Order("generated_at desc").Find(&cards).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load report cards"})
	}
	return c.JSON(cards)
}

package handlers

import (
	"errors"

	"school_backend/database"
	"school_backend/models"
	"school_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code"`
}

func CreateSubject(c *fiber.Ctx) error {
	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	code := req.Code
	if code == "" {
		generated, err := utils.GenerateUniqueSubjectCode(database.DB, req.Name)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate subject code"})
		}
		code = generated
	}

	subject := models.Subject{Name: req.Name, Code: code}
	if err := database.DB.Create(&subject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Subject code already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(subject)
}

func ListSubjects(c *fiber.Ctx) error {
	var subjects []models.Subject
	database.DB.Order("name").Find(&subjects)
	return c.JSON(subjects)
}

func GetSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}
	return c.JSON(subject)
}

func UpdateSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	var req SubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// The code is the subject's referenced identity; only the display name
	// is editable.
	subject.Name = req.Name
	if err := database.DB.Save(&subject).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subject"})
	}

	return c.JSON(subject)
}

func DeleteSubject(c *fiber.Ctx) error {
	subjectID := c.Params("subjectId")
	result := database.DB.Delete(&models.Subject{}, "id = ?", subjectID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete subject"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}
	return c.JSON(fiber.Map{"message": "Subject deleted"})
}

// ListSubjectsByClass returns the course set of one class.
func ListSubjectsByClass(c *fiber.Ctx) error {
	classID := c.Params("classId")
	var class models.Class
	if err := database.DB.Preload("Courses").First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	if class.Courses == nil {
		return c.JSON([]models.Subject{})
	}
	return c.JSON(class.Courses)
}

package handlers

import (
	"school_backend/database"
	"school_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AssignmentRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
	ClassID   string `json:"class_id" validate:"required,uuid"`
}

// CreateAssignment authorizes a teacher to grade a subject in a class.
func CreateAssignment(c *fiber.Ctx) error {
	var req AssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	teacherID, _ := uuid.Parse(req.TeacherID)
	subjectID, _ := uuid.Parse(req.SubjectID)
	classID, _ := uuid.Parse(req.ClassID)

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ? AND role = ?", teacherID, "teacher").Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Teacher not found"})
	}
	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", subjectID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Subject not found"})
	}
	var class models.Class
	if err := database.DB.First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Class not found"})
	}

	assignment := models.TeacherAssignment{
		TeacherID: teacherID,
		SubjectID: subjectID,
		ClassID:   classID,
	}
	if err := database.DB.Create(&assignment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create assignment"})
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

func ListAssignments(c *fiber.Ctx) error {
	var assignments []models.TeacherAssignment
	database.DB.Preload("Teacher").Preload("Subject").Preload("Class").Find(&assignments)
	return c.JSON(assignments)
}

func ListAssignmentsByTeacher(c *fiber.Ctx) error {
	teacherID := c.Params("teacherId")
	var assignments []models.TeacherAssignment
	err := database.DB.Preload("Teacher").Preload("Subject").Preload("Class").
		Where("teacher_id = ?", teacherID).Find(&assignments).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load assignments"})
	}
	return c.JSON(assignments)
}

func DeleteAssignment(c *fiber.Ctx) error {
	assignmentID := c.Params("assignmentId")
	result := database.DB.Delete(&models.TeacherAssignment{}, "id = ?", assignmentID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete assignment"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Assignment not found"})
	}
	return c.JSON(fiber.Map{"message": "Assignment deleted"})
}

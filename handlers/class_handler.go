package handlers

import (
	"errors"

	"school_backend/database"
	"school_backend/grading"
	"school_backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ClassRequest struct {
	Name      string   `json:"name" validate:"required"`
	CourseIDs []string `json:"course_ids"`
}

func CreateClass(c *fiber.Ctx) error {
	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courses, err := findSubjects(req.CourseIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	class := models.Class{Name: req.Name, Courses: courses}
	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(fiber.StatusCreated).JSON(class)
}

func ListClasses(c *fiber.Ctx) error {
	var classes []models.Class
	database.DB.Preload("Courses").Order("name").Find(&classes)
	return c.JSON(classes)
}

func GetClass(c *fiber.Ctx) error {
	classID := c.Params("classId")
	var class models.Class
	if err := database.DB.Preload("Courses").First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}
	return c.JSON(class)
}

func UpdateClass(c *fiber.Ctx) error {
	classID := c.Params("classId")
	var class models.Class
	if err := database.DB.First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	var req ClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	newCourses, err := findSubjects(req.CourseIDs)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		class.Name = req.Name
		if err := tx.Save(&class).Error; err != nil {
			return err
		}
		return tx.Model(&class).Association("Courses").Replace(newCourses)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}

	class.Courses = newCourses
	return c.JSON(class)
}

func DeleteClass(c *fiber.Ctx) error {
	classID := c.Params("classId")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var class models.Class
		if err := tx.First(&class, "id = ?", classID).Error; err != nil {
			return err
		}
		if err := tx.Model(&class).Association("Courses").Clear(); err != nil {
			return err
		}
		return tx.Delete(&class).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete class"})
	}

	return c.JSON(fiber.Map{"message": "Class deleted"})
}

// GetClassCoursesAndTeachers returns every course of the class with the
// teachers assigned to it, including courses nobody teaches yet.
func GetClassCoursesAndTeachers(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "classId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	result, err := gradeViews.CourseTeacherMap(c.Context(), classID)
	if err != nil {
		if grading.IsNotFound(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load class courses"})
	}
	return c.JSON(result)
}

func findSubjects(ids []string) ([]*models.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subjects []*models.Subject
	if err := database.DB.Where("id IN ?", ids).Find(&subjects).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to find courses")
	}
	if len(subjects) != len(ids) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "One or more provided course IDs are invalid")
	}
	return subjects, nil
}

package handlers

import (
	"errors"
	"fmt"

	"school_backend/database"
	"school_backend/models"
	"school_backend/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StudentListEntry struct {
	ID    uuid.UUID     `json:"id"`
	User  models.User   `json:"user"`
	Class *models.Class `json:"class"`
}

// ListStudents returns every student-role user, merged with their enrollment
// when one exists. Students without an enrollment appear with a nil class.
func ListStudents(c *fiber.Ctx) error {
	var users []models.User
	if err := database.DB.Where("role = ?", "student").Order("name").Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load students"})
	}

	var details []models.StudentDetail
	if err := database.DB.Preload("Class").Find(&details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load student details"})
	}
	detailsByUser := make(map[uuid.UUID]models.StudentDetail, len(details))
	for _, d := range details {
		detailsByUser[d.UserID] = d
	}

	result := make([]StudentListEntry, 0, len(users))
	for _, user := range users {
		entry := StudentListEntry{ID: user.ID, User: user}
		if detail, ok := detailsByUser[user.ID]; ok {
			entry.ID = detail.ID
			cls := detail.Class
			entry.Class = &cls
		}
		result = append(result, entry)
	}

	return c.JSON(result)
}

type CreateStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Password    string `json:"password" validate:"required,min=6"`
	ClassID     string `json:"class_id" validate:"required,uuid"`
}

// CreateStudent registers the user account and its enrollment in one
// transaction.
func CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	classID, _ := uuid.Parse(req.ClassID)

	var detail models.StudentDetail
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var class models.Class
		if err := tx.First(&class, "id = ?", classID).Error; err != nil {
			return err
		}

		user := models.User{
			Name:        req.Name,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			Gender:      req.Gender,
			Password:    string(hashedPassword),
			Role:        "student",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		detail = models.StudentDetail{UserID: user.ID, ClassID: classID}
		return tx.Create(&detail).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Class not found"})
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	database.DB.Preload("User").Preload("Class").First(&detail, "id = ?", detail.ID)

	go notifications.SendEmail(req.Name, req.Email, "Welcome to the school portal",
		fmt.Sprintf("<h1>Welcome, %s!</h1><p>Your student account has been created. Sign in with this email address.</p>", req.Name))

	return c.Status(fiber.StatusCreated).JSON(detail)
}

type UpdateStudentRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Password    string `json:"password"`
	ClassID     string `json:"class_id" validate:"required,uuid"`
}

// UpdateStudent edits the user account and moves the enrollment in one
// transaction.
func UpdateStudent(c *fiber.Ctx) error {
	studentID := c.Params("studentId")

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var detail models.StudentDetail
	if err := database.DB.First(&detail, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"email":        req.Email,
		"phone_number": req.PhoneNumber,
		"gender":       req.Gender,
	}
	if req.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}
		updates["password"] = string(hashedPassword)
	}

	classID, _ := uuid.Parse(req.ClassID)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", detail.UserID).Updates(updates).Error; err != nil {
			return err
		}
		detail.ClassID = classID
		return tx.Save(&detail).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}

	database.DB.Preload("User").Preload("Class").First(&detail, "id = ?", detail.ID)
	return c.JSON(detail)
}

// DeleteStudent removes the enrollment and the user account. The id may be
// either the enrollment id or the user id, matching how clients address
// students that were never enrolled.
func DeleteStudent(c *fiber.Ctx) error {
	id := c.Params("studentId")

	var detail models.StudentDetail
	err := database.DB.First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = database.DB.First(&detail, "user_id = ?", id).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		result := database.DB.Delete(&models.User{}, "id = ? AND role = ?", id, "student")
		if result.Error != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.JSON(fiber.Map{"message": "Student deleted"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.StudentDetail{}, "id = ?", detail.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", detail.UserID).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student and details deleted"})
}

type AssignClassRequest struct {
	ClassID string `json:"class_id" validate:"required,uuid"`
}

// AssignClassToStudent moves a student to a class, creating the enrollment
// if the user has none yet. A student holds at most one class at a time.
func AssignClassToStudent(c *fiber.Ctx) error {
	id := c.Params("studentId")

	var req AssignClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	classID, _ := uuid.Parse(req.ClassID)

	var class models.Class
	if err := database.DB.First(&class, "id = ?", classID).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Class not found"})
	}

	var detail models.StudentDetail
	err := database.DB.First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = database.DB.First(&detail, "user_id = ?", id).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		userID, perr := uuid.Parse(id)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
		}
		detail = models.StudentDetail{UserID: userID, ClassID: classID}
		if err := database.DB.Create(&detail).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign class"})
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign class"})
	} else {
		detail.ClassID = classID
		if err := database.DB.Save(&detail).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign class"})
		}
	}

	database.DB.Preload("User").Preload("Class").First(&detail, "id = ?", detail.ID)
	return c.JSON(detail)
}

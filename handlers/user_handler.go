package handlers

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"school_backend/database"
	"school_backend/models"
	"school_backend/notifications"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetUsersByRole lists users of one role with pagination and a free-text
// search over name, email and phone number.
func GetUsersByRole(c *fiber.Ctx) error {
	role := c.Params("role")
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	search := strings.TrimSpace(c.Query("q"))
	offset := (page - 1) * limit

	var users []models.User
	var total int64

	query := database.DB.Model(&models.User{}).Where("role = ?", role)
	countQuery := database.DB.Model(&models.User{}).Where("role = ?", role)

	if search != "" {
		searchTerm := "%" + search + "%"
		filter := "name ILIKE ? OR email ILIKE ? OR phone_number ILIKE ?"
		query = query.Where(filter, searchTerm, searchTerm, searchTerm)
		countQuery = countQuery.Where(filter, searchTerm, searchTerm, searchTerm)
	}

	countQuery.Count(&total)
	query.Offset(offset).Limit(limit).Find(&users)

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"meta": fiber.Map{
			"total_pages":  int(math.Ceil(float64(total) / float64(limit))),
			"current_page": page,
		},
	})
}

type CreateTeacherRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Gender      string `json:"gender" validate:"required,oneof=male female other"`
	Password    string `json:"password" validate:"required,min=6"`
	Role        string `json:"role" validate:"required,eq=teacher"`
}

// CreateTeacher registers a teacher account. Only the principal may do this;
// the role guard sits on the route.
func CreateTeacher(c *fiber.Ctx) error {
	var req CreateTeacherRequest
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

	user := models.User{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Gender:      req.Gender,
		Password:    string(hashedPassword),
		Role:        "teacher",
	}

	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Email already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
	}

	go notifications.SendEmail(user.Name, user.Email, "Welcome to the school portal",
		fmt.Sprintf("<h1>Welcome, %s!</h1><p>Your teacher account has been created. Sign in with this email address.</p>", user.Name))

	return c.Status(fiber.StatusCreated).JSON(UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

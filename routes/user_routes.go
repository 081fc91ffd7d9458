package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func UserRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/users", middleware.Protected())
	users.Get("/role/:role", handlers.GetUsersByRole)
	users.Post("/teachers", middleware.PrincipalRequired(), handlers.CreateTeacher)
}

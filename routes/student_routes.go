package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	students := api.Group("/students", middleware.Protected())
	students.Get("", handlers.ListStudents)

	admin := students.Group("", middleware.PrincipalRequired())
	admin.Post("", handlers.CreateStudent)
	admin.Put("/:studentId", handlers.UpdateStudent)
	admin.Delete("/:studentId", handlers.DeleteStudent)
	admin.Post("/:studentId/class", handlers.AssignClassToStudent)
}

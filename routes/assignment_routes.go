package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func AssignmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	assignments := api.Group("/assignments", middleware.Protected())
	assignments.Get("", handlers.ListAssignments)
	assignments.Get("/teacher/:teacherId", handlers.ListAssignmentsByTeacher)

	admin := assignments.Group("", middleware.PrincipalRequired())
	admin.Post("", handlers.CreateAssignment)
	admin.Delete("/:assignmentId", handlers.DeleteAssignment)
}

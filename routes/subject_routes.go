package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func SubjectRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	subjects := api.Group("/subjects", middleware.Protected())
	subjects.Get("", handlers.ListSubjects)
	subjects.Get("/:subjectId", handlers.GetSubject)

	admin := subjects.Group("", middleware.PrincipalRequired())
	admin.Post("", handlers.CreateSubject)
	admin.Put("/:subjectId", handlers.UpdateSubject)
	admin.Delete("/:subjectId", handlers.DeleteSubject)
}

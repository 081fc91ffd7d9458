package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func ClassRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	classes := api.Group("/classes", middleware.Protected())
	classes.Get("", handlers.ListClasses)
	classes.Get("/:classId", handlers.GetClass)
	classes.Get("/:classId/subjects", handlers.ListSubjectsByClass)
	classes.Get("/:classId/courses-and-teachers", handlers.GetClassCoursesAndTeachers)

	admin := classes.Group("", middleware.PrincipalRequired())
	admin.Post("", handlers.CreateClass)
	admin.Put("/:classId", handlers.UpdateClass)
	admin.Delete("/:classId", handlers.DeleteClass)
}

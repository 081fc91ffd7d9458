package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func ReportRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reports := api.Group("/report-cards", middleware.Protected())
	reports.Get("/student/:studentId", handlers.ListReportCards)
	reports.Post("/student/:studentId", middleware.TeacherRequired(), handlers.RequestReportCard)
}

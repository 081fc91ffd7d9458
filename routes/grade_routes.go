package routes

import (
	"school_backend/handlers"
	"school_backend/middleware"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func GradeRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	grades := api.Group("/grades", middleware.Protected())
	grades.Get("", handlers.ListGrades)
	grades.Get("/student/:studentId", handlers.GetGradesByStudent)
	grades.Get("/student/user/:userId", handlers.GetGradesByStudentUser)
	grades.Get("/student/:userId/teachers", handlers.GetTeachersForStudent)
	grades.Get("/teacher/:teacherId", handlers.GetGradesByTeacher)
	grades.Get("/teacher/:teacherId/a-grade-students", handlers.GetAGradeStudentsByTeacher)
	grades.Get("/class/:classId", handlers.GetGradesByClass)
	grades.Get("/:gradeId", handlers.GetGrade)

	// Posting and correcting marks is the teachers' job.
	writer := grades.Group("", middleware.TeacherRequired())
	writer.Post("", handlers.SubmitMarks)
	writer.Put("/:gradeId", handlers.ReplaceMarks)
	writer.Delete("/:gradeId", handlers.DeleteGrade)

	api.Use("/ws", func(c *fiber.Ctx) error {
		if !websocketcontrib.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	api.Get("/ws", websocketcontrib.New(handlers.ServeWs))
}

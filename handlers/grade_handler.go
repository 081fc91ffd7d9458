package handlers

import (
	"school_backend/database"
	"school_backend/grading"
	"school_backend/models"
	"school_backend/storage"
	"school_backend/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	gradeStore *grading.Store
	gradeViews *grading.Views
)

// InitGrading wires the grading engine to the shared database connection.
// Must be called after database.ConnectDB; the store instance is shared so
// its per-tuple serialization actually serializes.
func InitGrading() {
	repo := storage.NewGradeRepo(database.DB)
	gradeStore = grading.NewStore(repo)
	gradeViews = grading.NewViews(repo, storage.NewDirectory(database.DB))
}

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func gradingErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case grading.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case grading.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

type SubmitMarksRequest struct {
	Student         string    `json:"student" validate:"required,uuid"`
	Subject         string    `json:"subject" validate:"required,uuid"`
	Teacher         string    `json:"teacher" validate:"required,uuid"`
	Class           string    `json:"class" validate:"required,uuid"`
	AssignmentMarks []float64 `json:"assignment_marks"`
	QuizMarks       []float64 `json:"quiz_marks"`
	PaperMarks      []float64 `json:"paper_marks"`
}

// SubmitMarks appends new marks to the student's record for the tuple,
// creating it on first submission. Clients send only the new marks.
func SubmitMarks(c *fiber.Ctx) error {
	var req SubmitMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, _ := uuid.Parse(req.Student)
	subjectID, _ := uuid.Parse(req.Subject)
	teacherID, _ := uuid.Parse(req.Teacher)
	classID, _ := uuid.Parse(req.Class)

	res, err := gradeStore.SubmitMarks(c.Context(), grading.SubmitInput{
		StudentID:       studentID,
		SubjectID:       subjectID,
		TeacherID:       teacherID,
		ClassID:         classID,
		AssignmentMarks: req.AssignmentMarks,
		QuizMarks:       req.QuizMarks,
		PaperMarks:      req.PaperMarks,
	})
	if err != nil {
		return gradingErrorResponse(c, err)
	}

	go notifyGradePosted(res)

	if res.Created {
		return c.Status(fiber.StatusCreated).JSON(res.Grade)
	}
	return c.JSON(res.Grade)
}

// notifyGradePosted pushes a live notice to the student's open websocket
// connection, if any.
func notifyGradePosted(res *grading.SubmitResult) {
	var detail models.StudentDetail
	if err := database.DB.First(&detail, "id = ?", res.Grade.StudentID).Error; err != nil {
		return
	}

	notice := &websocket.GradeNotice{
		UserID:      detail.UserID,
		GradeLetter: res.Grade.GradeLetter,
		Performance: grading.Performance(res.Grade.AssignmentMarks, res.Grade.QuizMarks, res.Grade.PaperMarks),
		Status:      "updated",
	}
	if res.Created {
		notice.Status = "created"
	}

	var subject models.Subject
	if err := database.DB.First(&subject, "id = ?", res.Grade.SubjectID).Error; err == nil {
		notice.Subject = subject.Name
	}
	var class models.Class
	if err := database.DB.First(&class, "id = ?", res.Grade.ClassID).Error; err == nil {
		notice.Class = class.Name
	}

	websocket.Notify(notice)
}

type ReplaceMarksRequest struct {
	AssignmentMarks *[]float64 `json:"assignment_marks"`
	QuizMarks       *[]float64 `json:"quiz_marks"`
	PaperMarks      *[]float64 `json:"paper_marks"`
}

// ReplaceMarks overwrites whole mark arrays of an existing record. Arrays
// omitted from the body are left untouched.
func ReplaceMarks(c *fiber.Ctx) error {
	gradeID, err := parseUUIDParam(c, "gradeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid grade id"})
	}

	var req ReplaceMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	grade, err := gradeStore.ReplaceMarks(c.Context(), gradeID, grading.ReplaceInput{
		AssignmentMarks: req.AssignmentMarks,
		QuizMarks:       req.QuizMarks,
		PaperMarks:      req.PaperMarks,
	})
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(grade)
}

func DeleteGrade(c *fiber.Ctx) error {
	gradeID, err := parseUUIDParam(c, "gradeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid grade id"})
	}

	if err := gradeStore.DeleteRecord(c.Context(), gradeID); err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Grade deleted"})
}

func ListGrades(c *fiber.Ctx) error {
	var grades []models.Grade
	database.DB.Find(&grades)
	return c.JSON(grades)
}

func GetGrade(c *fiber.Ctx) error {
	gradeID := c.Params("gradeId")
	var grade models.Grade
	if err := database.DB.First(&grade, "id = ?", gradeID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Grade not found"})
	}
	return c.JSON(grade)
}

func GetGradesByStudent(c *fiber.Ctx) error {
	studentID, err := parseUUIDParam(c, "studentId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	entries, err := gradeViews.GradesForStudent(c.Context(), studentID)
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(entries)
}

func GetGradesByStudentUser(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	report, err := gradeViews.GradesForStudentUser(c.Context(), userID)
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(report)
}

func GetGradesByTeacher(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacherId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	roster, err := gradeViews.GradesForTeacher(c.Context(), teacherID)
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(roster)
}

func GetGradesByClass(c *fiber.Ctx) error {
	classID, err := parseUUIDParam(c, "classId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	entries, err := gradeViews.GradesForClass(c.Context(), classID)
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(entries)
}

// GetAGradeStudentsByTeacher backs the teacher dashboard's honor roll.
func GetAGradeStudentsByTeacher(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacherId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid teacher id"})
	}

	entries, err := gradeViews.AGradeStudentsForTeacher(c.Context(), teacherID)
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(entries)
}

func GetTeachersForStudent(c *fiber.Ctx) error {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	result, err := gradeViews.TeachersAndSubjectsForStudent(c.Context(), userID)
	if err != nil {
		return gradingErrorResponse(c, err)
	}
	return c.JSON(result)
}

package grading

import (
	"context"

	"github.com/google/uuid"

	"school_backend/models"
)

// GradeRepository is the persistence boundary for grade records. Absent
// records are reported with ErrNotFound; Create reports a tuple collision
// with ErrDuplicate. Any other error is treated as a storage failure.
type GradeRepository interface {
	FindByTuple(ctx context.Context, studentID, subjectID, teacherID, classID uuid.UUID) (*models.Grade, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Grade, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Grade, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Grade, error)
	ListByTeacherAndLetter(ctx context.Context, teacherID uuid.UUID, letter string) ([]models.Grade, error)
	ListByClass(ctx context.Context, classID uuid.UUID) ([]models.Grade, error)
	Create(ctx context.Context, grade *models.Grade) error
	Save(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Directory provides read-only lookups of the entities grade records
// reference. Views resolve display data through it and never write.
type Directory interface {
	SubjectByID(ctx context.Context, id uuid.UUID) (*models.Subject, error)
	ClassByID(ctx context.Context, id uuid.UUID) (*models.Class, error)
	UserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.StudentDetail, error)
	EnrollmentByUser(ctx context.Context, userID uuid.UUID) (*models.StudentDetail, error)
	AssignmentsByClass(ctx context.Context, classID uuid.UUID) ([]models.TeacherAssignment, error)
}

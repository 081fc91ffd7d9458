package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Grade accumulates a student's marks for one subject graded by one teacher in
// one class. The composite unique index guarantees at most one record per
// (student, subject, teacher, class) tuple. GradeLetter is derived from the
// latest mark of each array and must never be set independently of the marks.
type Grade struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grade_tuple" json:"student"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grade_tuple" json:"subject"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grade_tuple" json:"teacher"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_grade_tuple" json:"class"`

	AssignmentMarks datatypes.JSONSlice[float64] `json:"assignment_marks"`
	QuizMarks       datatypes.JSONSlice[float64] `json:"quiz_marks"`
	PaperMarks      datatypes.JSONSlice[float64] `json:"paper_marks"`
	GradeLetter     string                       `gorm:"size:1" json:"grade_letter"`

	Student StudentDetail `gorm:"foreignkey:StudentID" json:"-"`
	Subject Subject       `gorm:"foreignkey:SubjectID" json:"-"`
	Teacher User          `gorm:"foreignkey:TeacherID" json:"-"`
	Class   Class         `gorm:"foreignkey:ClassID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

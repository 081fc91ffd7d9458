package models

import (
	"time"

	"github.com/google/uuid"
)

// TeacherAssignment authorizes a teacher to grade a subject in a class. No
// uniqueness constraint is enforced on the triple; readers deduplicate.
type TeacherAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null" json:"teacher_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null" json:"subject_id"`
	ClassID   uuid.UUID `gorm:"type:uuid;not null" json:"class_id"`

	Teacher User    `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
	Subject Subject `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`
	Class   Class   `gorm:"foreignkey:ClassID" json:"class,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

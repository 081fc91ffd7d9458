package models

import (
	"time"

	"github.com/google/uuid"
)

type ReportCard struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	PdfURL    string    `gorm:"size:255;not null" json:"pdf_url"`

	Student StudentDetail `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

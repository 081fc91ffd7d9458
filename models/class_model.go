package models

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`

	Courses []*Subject `gorm:"many2many:class_subjects;" json:"courses,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// StudentDetail links a student user to their current class. A student has at
// most one active class; reassignment overwrites the class reference.
type StudentDetail struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	ClassID uuid.UUID `gorm:"type:uuid;not null" json:"class_id"`

	User  User  `gorm:"foreignkey:UserID" json:"user,omitempty"`
	Class Class `gorm:"foreignkey:ClassID" json:"class,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

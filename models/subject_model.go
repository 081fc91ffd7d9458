package models

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:255;not null" json:"name"`
	Code string    `gorm:"size:20;not null;unique" json:"code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package storage

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"school_backend/models"
)

// Directory implements grading.Directory: read-only lookups of the entities
// grade records reference.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) SubjectByID(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	if err := d.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &subject, nil
}

func (d *Directory) ClassByID(ctx context.Context, id uuid.UUID) (*models.Class, error) {
	var class models.Class
	if err := d.db.WithContext(ctx).Preload("Courses").First(&class, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &class, nil
}

func (d *Directory) UserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (d *Directory) EnrollmentByID(ctx context.Context, id uuid.UUID) (*models.StudentDetail, error) {
	var detail models.StudentDetail
	if err := d.db.WithContext(ctx).First(&detail, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &detail, nil
}

func (d *Directory) EnrollmentByUser(ctx context.Context, userID uuid.UUID) (*models.StudentDetail, error) {
	var detail models.StudentDetail
	if err := d.db.WithContext(ctx).First(&detail, "user_id = ?", userID).Error; err != nil {
		return nil, mapError(err)
	}
	return &detail, nil
}

func (d *Directory) AssignmentsByClass(ctx context.Context, classID uuid.UUID) ([]models.TeacherAssignment, error) {
	var assignments []models.TeacherAssignment
	if err := d.db.WithContext(ctx).Where("class_id = ?", classID).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

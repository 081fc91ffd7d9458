package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"school_backend/grading"
	"school_backend/models"
)

// GradeRepo implements grading.GradeRepository on the shared GORM connection.
// The composite unique index on the grade tuple backs the at-most-one-record
// invariant across processes.
type GradeRepo struct {
	db *gorm.DB
}

func NewGradeRepo(db *gorm.DB) *GradeRepo {
	return &GradeRepo{db: db}
}

func (r *GradeRepo) FindByTuple(ctx context.Context, studentID, subjectID, teacherID, classID uuid.UUID) (*models.Grade, error) {
	var grade models.Grade
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND subject_id = ? AND teacher_id = ? AND class_id = ?",
			studentID, subjectID, teacherID, classID).
		First(&grade).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &grade, nil
}

func (r *GradeRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Grade, error) {
	var grade models.Grade
	if err := r.db.WithContext(ctx).First(&grade, "id = ?", id).Error; err != nil {
		return nil, mapError(err)
	}
	return &grade, nil
}

func (r *GradeRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *GradeRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).Where("teacher_id = ?", teacherID).Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *GradeRepo) ListByTeacherAndLetter(ctx context.Context, teacherID uuid.UUID, letter string) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND grade_letter = ?", teacherID, letter).
		Find(&grades).Error
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *GradeRepo) ListByClass(ctx context.Context, classID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	if err := r.db.WithContext(ctx).Where("class_id = ?", classID).Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *GradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	if err := r.db.WithContext(ctx).Create(grade).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return grading.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GradeRepo) Save(ctx context.Context, grade *models.Grade) error {
	return r.db.WithContext(ctx).Save(grade).Error
}

func (r *GradeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Grade{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return grading.ErrNotFound
	}
	return nil
}

func mapError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return grading.ErrNotFound
	}
	return err
}

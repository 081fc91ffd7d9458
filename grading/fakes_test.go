package grading

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"school_backend/models"
)

// In-memory repository doubles backing the store and view tests.

type memGradeRepo struct {
	mu     sync.Mutex
	grades map[uuid.UUID]*models.Grade
}

func newMemGradeRepo() *memGradeRepo {
	return &memGradeRepo{grades: make(map[uuid.UUID]*models.Grade)}
}

func (r *memGradeRepo) FindByTuple(_ context.Context, studentID, subjectID, teacherID, classID uuid.UUID) (*models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.grades {
		if g.StudentID == studentID && g.SubjectID == subjectID && g.TeacherID == teacherID && g.ClassID == classID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memGradeRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.grades[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *memGradeRepo) ListByStudent(_ context.Context, studentID uuid.UUID) ([]models.Grade, error) {
	return r.list(func(g *models.Grade) bool { return g.StudentID == studentID })
}

func (r *memGradeRepo) ListByTeacher(_ context.Context, teacherID uuid.UUID) ([]models.Grade, error) {
	return r.list(func(g *models.Grade) bool { return g.TeacherID == teacherID })
}

func (r *memGradeRepo) ListByTeacherAndLetter(_ context.Context, teacherID uuid.UUID, letter string) ([]models.Grade, error) {
	return r.list(func(g *models.Grade) bool { return g.TeacherID == teacherID && g.GradeLetter == letter })
}

func (r *memGradeRepo) ListByClass(_ context.Context, classID uuid.UUID) ([]models.Grade, error) {
	return r.list(func(g *models.Grade) bool { return g.ClassID == classID })
}

func (r *memGradeRepo) list(match func(*models.Grade) bool) ([]models.Grade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Grade
	for _, g := range r.grades {
		if match(g) {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (r *memGradeRepo) Create(_ context.Context, grade *models.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.grades {
		if g.StudentID == grade.StudentID && g.SubjectID == grade.SubjectID &&
			g.TeacherID == grade.TeacherID && g.ClassID == grade.ClassID {
			return ErrDuplicate
		}
	}
	if grade.ID == uuid.Nil {
		grade.ID = uuid.New()
	}
	cp := *grade
	r.grades[grade.ID] = &cp
	return nil
}

func (r *memGradeRepo) Save(_ context.Context, grade *models.Grade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.grades[grade.ID]; !ok {
		return ErrNotFound
	}
	cp := *grade
	r.grades[grade.ID] = &cp
	return nil
}

func (r *memGradeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.grades[id]; !ok {
		return ErrNotFound
	}
	delete(r.grades, id)
	return nil
}

func (r *memGradeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.grades)
}

type memDirectory struct {
	subjects    map[uuid.UUID]models.Subject
	classes     map[uuid.UUID]models.Class
	users       map[uuid.UUID]models.User
	enrollments map[uuid.UUID]models.StudentDetail
	assignments []models.TeacherAssignment
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		subjects:    make(map[uuid.UUID]models.Subject),
		classes:     make(map[uuid.UUID]models.Class),
		users:       make(map[uuid.UUID]models.User),
		enrollments: make(map[uuid.UUID]models.StudentDetail),
	}
}

func (d *memDirectory) SubjectByID(_ context.Context, id uuid.UUID) (*models.Subject, error) {
	if s, ok := d.subjects[id]; ok {
		return &s, nil
	}
	return nil, ErrNotFound
}

func (d *memDirectory) ClassByID(_ context.Context, id uuid.UUID) (*models.Class, error) {
	if c, ok := d.classes[id]; ok {
		return &c, nil
	}
	return nil, ErrNotFound
}

func (d *memDirectory) UserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := d.users[id]; ok {
		return &u, nil
	}
	return nil, ErrNotFound
}

func (d *memDirectory) EnrollmentByID(_ context.Context, id uuid.UUID) (*models.StudentDetail, error) {
	if e, ok := d.enrollments[id]; ok {
		return &e, nil
	}
	return nil, ErrNotFound
}

func (d *memDirectory) EnrollmentByUser(_ context.Context, userID uuid.UUID) (*models.StudentDetail, error) {
	for _, e := range d.enrollments {
		if e.UserID == userID {
			cp := e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (d *memDirectory) AssignmentsByClass(_ context.Context, classID uuid.UUID) ([]models.TeacherAssignment, error) {
	var out []models.TeacherAssignment
	for _, a := range d.assignments {
		if a.ClassID == classID {
			out = append(out, a)
		}
	}
	return out, nil
}

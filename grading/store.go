package grading

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"school_backend/models"
)

// Store owns the create/update lifecycle of grade records. No other component
// mutates them. SubmitMarks is serialized per (student, subject, teacher,
// class) tuple so that concurrent submissions can never produce two records
// for the same tuple; the repository's unique constraint backs this up across
// processes.
type Store struct {
	grades GradeRepository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(grades GradeRepository) *Store {
	return &Store{
		grades: grades,
		locks:  make(map[string]*sync.Mutex),
	}
}

type SubmitInput struct {
	StudentID uuid.UUID
	SubjectID uuid.UUID
	TeacherID uuid.UUID
	ClassID   uuid.UUID

	AssignmentMarks []float64
	QuizMarks       []float64
	PaperMarks      []float64
}

type SubmitResult struct {
	Grade   *models.Grade
	Created bool
}

// SubmitMarks appends the given marks to the record for the tuple, creating
// the record if none exists. Callers pass only the new marks, not the full
// history; a retried submit appends again.
func (s *Store) SubmitMarks(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	unlock := s.lockTuple(in)
	defer unlock()

	grade, err := s.grades.FindByTuple(ctx, in.StudentID, in.SubjectID, in.TeacherID, in.ClassID)
	switch {
	case err == nil:
		return s.appendMarks(ctx, grade, in)

	case errors.Is(err, ErrNotFound):
		grade = &models.Grade{
			StudentID:       in.StudentID,
			SubjectID:       in.SubjectID,
			TeacherID:       in.TeacherID,
			ClassID:         in.ClassID,
			AssignmentMarks: append([]float64(nil), in.AssignmentMarks...),
			QuizMarks:       append([]float64(nil), in.QuizMarks...),
			PaperMarks:      append([]float64(nil), in.PaperMarks...),
		}
		grade.GradeLetter = LetterFor(grade.AssignmentMarks, grade.QuizMarks, grade.PaperMarks)

		if err := s.grades.Create(ctx, grade); err != nil {
			if errors.Is(err, ErrDuplicate) {
				// Another writer won the race; fold this submission into
				// its record instead.
				existing, ferr := s.grades.FindByTuple(ctx, in.StudentID, in.SubjectID, in.TeacherID, in.ClassID)
				if ferr != nil {
					return nil, &StorageError{Op: "submit marks", Err: ferr}
				}
				return s.appendMarks(ctx, existing, in)
			}
			return nil, &StorageError{Op: "submit marks", Err: err}
		}
		return &SubmitResult{Grade: grade, Created: true}, nil

	default:
		return nil, &StorageError{Op: "submit marks", Err: err}
	}
}

func (s *Store) appendMarks(ctx context.Context, grade *models.Grade, in SubmitInput) (*SubmitResult, error) {
	grade.AssignmentMarks = append(grade.AssignmentMarks, in.AssignmentMarks...)
	grade.QuizMarks = append(grade.QuizMarks, in.QuizMarks...)
	grade.PaperMarks = append(grade.PaperMarks, in.PaperMarks...)
	grade.GradeLetter = LetterFor(grade.AssignmentMarks, grade.QuizMarks, grade.PaperMarks)

	if err := s.grades.Save(ctx, grade); err != nil {
		return nil, &StorageError{Op: "submit marks", Err: err}
	}
	return &SubmitResult{Grade: grade, Created: false}, nil
}

type ReplaceInput struct {
	// Nil means leave the stored array untouched; a non-nil pointer replaces
	// it wholesale, including with an empty array.
	AssignmentMarks *[]float64
	QuizMarks       *[]float64
	PaperMarks      *[]float64
}

// ReplaceMarks overwrites the provided mark arrays of an existing record and
// recomputes its letter from the post-replacement state.
func (s *Store) ReplaceMarks(ctx context.Context, id uuid.UUID, in ReplaceInput) (*models.Grade, error) {
	grade, err := s.grades.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Entity: "grade", ID: id.String()}
		}
		return nil, &StorageError{Op: "replace marks", Err: err}
	}

	if in.AssignmentMarks != nil {
		grade.AssignmentMarks = append([]float64(nil), *in.AssignmentMarks...)
	}
	if in.QuizMarks != nil {
		grade.QuizMarks = append([]float64(nil), *in.QuizMarks...)
	}
	if in.PaperMarks != nil {
		grade.PaperMarks = append([]float64(nil), *in.PaperMarks...)
	}
	grade.GradeLetter = LetterFor(grade.AssignmentMarks, grade.QuizMarks, grade.PaperMarks)

	if err := s.grades.Save(ctx, grade); err != nil {
		return nil, &StorageError{Op: "replace marks", Err: err}
	}
	return grade, nil
}

// DeleteRecord removes a grade record unconditionally.
func (s *Store) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	if err := s.grades.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return &NotFoundError{Entity: "grade", ID: id.String()}
		}
		return &StorageError{Op: "delete record", Err: err}
	}
	return nil
}

func (in SubmitInput) validate() error {
	switch {
	case in.StudentID == uuid.Nil:
		return &ValidationError{Field: "student"}
	case in.SubjectID == uuid.Nil:
		return &ValidationError{Field: "subject"}
	case in.TeacherID == uuid.Nil:
		return &ValidationError{Field: "teacher"}
	case in.ClassID == uuid.Nil:
		return &ValidationError{Field: "class"}
	}
	return nil
}

func (s *Store) lockTuple(in SubmitInput) func() {
	key := in.StudentID.String() + "/" + in.SubjectID.String() + "/" + in.TeacherID.String() + "/" + in.ClassID.String()

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

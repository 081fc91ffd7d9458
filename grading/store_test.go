package grading

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/google/uuid"
)

func submitInput(studentID, subjectID, teacherID, classID uuid.UUID) SubmitInput {
	return SubmitInput{
		StudentID: studentID,
		SubjectID: subjectID,
		TeacherID: teacherID,
		ClassID:   classID,
	}
}

func TestSubmitMarksCreatesOnAbsent(t *testing.T) {
	repo := newMemGradeRepo()
	store := NewStore(repo)

	in := submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	in.AssignmentMarks = []float64{9}
	in.QuizMarks = []float64{9}
	in.PaperMarks = []float64{72}

	res, err := store.SubmitMarks(context.Background(), in)
	if err != nil {
		t.Fatalf("SubmitMarks() error = %v", err)
	}
	if !res.Created {
		t.Error("SubmitMarks() Created = false, want true")
	}
	if got := []float64(res.Grade.AssignmentMarks); !reflect.DeepEqual(got, []float64{9}) {
		t.Errorf("assignment marks = %v, want [9]", got)
	}
	if res.Grade.GradeLetter != "A" {
		t.Errorf("grade letter = %q, want A (performance 90)", res.Grade.GradeLetter)
	}
}

func TestSubmitMarksAppendsOnExisting(t *testing.T) {
	repo := newMemGradeRepo()
	store := NewStore(repo)
	ctx := context.Background()

	in := submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	in.AssignmentMarks = []float64{10}
	in.QuizMarks = []float64{5}
	in.PaperMarks = []float64{50}
	if _, err := store.SubmitMarks(ctx, in); err != nil {
		t.Fatalf("first SubmitMarks() error = %v", err)
	}

	in.AssignmentMarks = []float64{12}
	in.QuizMarks = nil
	in.PaperMarks = nil
	res, err := store.SubmitMarks(ctx, in)
	if err != nil {
		t.Fatalf("second SubmitMarks() error = %v", err)
	}
	if res.Created {
		t.Error("second SubmitMarks() Created = true, want false")
	}
	if got := []float64(res.Grade.AssignmentMarks); !reflect.DeepEqual(got, []float64{10, 12}) {
		t.Errorf("assignment marks = %v, want [10 12]", got)
	}
	// letter recomputed from the new latest: 12+5+50 = 67 -> D
	if res.Grade.GradeLetter != "D" {
		t.Errorf("grade letter = %q, want D", res.Grade.GradeLetter)
	}
	if repo.count() != 1 {
		t.Errorf("record count = %d, want 1", repo.count())
	}
}

func TestSubmitMarksValidation(t *testing.T) {
	store := NewStore(newMemGradeRepo())

	in := submitInput(uuid.Nil, uuid.New(), uuid.New(), uuid.New())
	if _, err := store.SubmitMarks(context.Background(), in); !IsValidation(err) {
		t.Fatalf("SubmitMarks() error = %v, want ValidationError", err)
	}

	in = submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.Nil)
	if _, err := store.SubmitMarks(context.Background(), in); !IsValidation(err) {
		t.Fatalf("SubmitMarks() error = %v, want ValidationError", err)
	}
}

func TestSubmitMarksNeverDuplicatesTuple(t *testing.T) {
	repo := newMemGradeRepo()
	store := NewStore(repo)
	in := submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.New())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			submission := in
			submission.QuizMarks = []float64{10}
			if _, err := store.SubmitMarks(context.Background(), submission); err != nil {
				t.Errorf("SubmitMarks() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.count() != 1 {
		t.Fatalf("record count = %d after concurrent submits, want 1", repo.count())
	}
	grade, err := repo.FindByTuple(context.Background(), in.StudentID, in.SubjectID, in.TeacherID, in.ClassID)
	if err != nil {
		t.Fatalf("FindByTuple() error = %v", err)
	}
	if len(grade.QuizMarks) != 8 {
		t.Errorf("quiz marks length = %d, want 8 (every submission appended)", len(grade.QuizMarks))
	}
}

func TestReplaceMarks(t *testing.T) {
	repo := newMemGradeRepo()
	store := NewStore(repo)
	ctx := context.Background()

	in := submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	in.AssignmentMarks = []float64{10}
	in.QuizMarks = []float64{10}
	in.PaperMarks = []float64{50, 55}
	res, err := store.SubmitMarks(ctx, in)
	if err != nil {
		t.Fatalf("SubmitMarks() error = %v", err)
	}

	paper := []float64{70}
	updated, err := store.ReplaceMarks(ctx, res.Grade.ID, ReplaceInput{PaperMarks: &paper})
	if err != nil {
		t.Fatalf("ReplaceMarks() error = %v", err)
	}
	if got := []float64(updated.PaperMarks); !reflect.DeepEqual(got, []float64{70}) {
		t.Errorf("paper marks = %v, want [70] (replaced, not appended)", got)
	}
	if got := []float64(updated.AssignmentMarks); !reflect.DeepEqual(got, []float64{10}) {
		t.Errorf("assignment marks = %v, want [10] (untouched)", got)
	}
	if got := []float64(updated.QuizMarks); !reflect.DeepEqual(got, []float64{10}) {
		t.Errorf("quiz marks = %v, want [10] (untouched)", got)
	}
	// 10+10+70 = 90 -> A
	if updated.GradeLetter != "A" {
		t.Errorf("grade letter = %q, want A", updated.GradeLetter)
	}
}

func TestReplaceMarksWithEmptyArray(t *testing.T) {
	repo := newMemGradeRepo()
	store := NewStore(repo)
	ctx := context.Background()

	in := submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	in.AssignmentMarks = []float64{15}
	in.QuizMarks = []float64{15}
	in.PaperMarks = []float64{70}
	res, err := store.SubmitMarks(ctx, in)
	if err != nil {
		t.Fatalf("SubmitMarks() error = %v", err)
	}

	empty := []float64{}
	updated, err := store.ReplaceMarks(ctx, res.Grade.ID, ReplaceInput{PaperMarks: &empty})
	if err != nil {
		t.Fatalf("ReplaceMarks() error = %v", err)
	}
	if len(updated.PaperMarks) != 0 {
		t.Errorf("paper marks = %v, want empty", updated.PaperMarks)
	}
	// 15+15+0 = 30 -> F
	if updated.GradeLetter != "F" {
		t.Errorf("grade letter = %q, want F", updated.GradeLetter)
	}
}

func TestReplaceMarksNotFound(t *testing.T) {
	store := NewStore(newMemGradeRepo())
	if _, err := store.ReplaceMarks(context.Background(), uuid.New(), ReplaceInput{}); !IsNotFound(err) {
		t.Fatalf("ReplaceMarks() error = %v, want NotFoundError", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	repo := newMemGradeRepo()
	store := NewStore(repo)
	ctx := context.Background()

	in := submitInput(uuid.New(), uuid.New(), uuid.New(), uuid.New())
	res, err := store.SubmitMarks(ctx, in)
	if err != nil {
		t.Fatalf("SubmitMarks() error = %v", err)
	}

	if err := store.DeleteRecord(ctx, res.Grade.ID); err != nil {
		t.Fatalf("DeleteRecord() error = %v", err)
	}
	if repo.count() != 0 {
		t.Errorf("record count = %d after delete, want 0", repo.count())
	}
	if err := store.DeleteRecord(ctx, res.Grade.ID); !IsNotFound(err) {
		t.Fatalf("DeleteRecord() second call error = %v, want NotFoundError", err)
	}
}

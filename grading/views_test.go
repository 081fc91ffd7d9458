package grading

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"school_backend/models"
)

type fixture struct {
	repo *memGradeRepo
	dir  *memDirectory

	teacherID uuid.UUID
	classID   uuid.UUID
	subjectID uuid.UUID
	studentID uuid.UUID // StudentDetail id
	userID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:      newMemGradeRepo(),
		dir:       newMemDirectory(),
		teacherID: uuid.New(),
		classID:   uuid.New(),
		subjectID: uuid.New(),
		studentID: uuid.New(),
		userID:    uuid.New(),
	}
	f.dir.users[f.teacherID] = models.User{ID: f.teacherID, Name: "Ms. Achieng", Email: "achieng@school.test", Role: "teacher"}
	f.dir.users[f.userID] = models.User{ID: f.userID, Name: "Brian Otieno", Email: "brian@school.test", Role: "student"}
	f.dir.subjects[f.subjectID] = models.Subject{ID: f.subjectID, Name: "Mathematics", Code: "MAT101"}
	f.dir.classes[f.classID] = models.Class{ID: f.classID, Name: "Form 2 East"}
	f.dir.enrollments[f.studentID] = models.StudentDetail{ID: f.studentID, UserID: f.userID, ClassID: f.classID}
	return f
}

func (f *fixture) addGrade(t *testing.T, studentID uuid.UUID, letter string) models.Grade {
	t.Helper()
	g := models.Grade{
		StudentID:   studentID,
		SubjectID:   f.subjectID,
		TeacherID:   f.teacherID,
		ClassID:     f.classID,
		GradeLetter: letter,
	}
	if err := f.repo.Create(context.Background(), &g); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return g
}

func TestGradesForTeacherResolves(t *testing.T) {
	f := newFixture(t)
	f.addGrade(t, f.studentID, "B")
	views := NewViews(f.repo, f.dir)

	roster, err := views.GradesForTeacher(context.Background(), f.teacherID)
	if err != nil {
		t.Fatalf("GradesForTeacher() error = %v", err)
	}
	if roster.Warning != "" {
		t.Errorf("warning = %q, want none", roster.Warning)
	}
	if len(roster.Grades) != 1 {
		t.Fatalf("grades length = %d, want 1", len(roster.Grades))
	}
	entry := roster.Grades[0]
	if entry.SubjectDetail == nil || entry.SubjectDetail.Name != "Mathematics" {
		t.Errorf("subject detail = %+v, want Mathematics", entry.SubjectDetail)
	}
	if entry.StudentDetail == nil || entry.StudentDetail.User == nil || entry.StudentDetail.User.Name != "Brian Otieno" {
		t.Errorf("student detail = %+v, want resolved user", entry.StudentDetail)
	}
}

func TestGradesForTeacherDegradesOnDanglingReference(t *testing.T) {
	f := newFixture(t)
	f.addGrade(t, f.studentID, "B")
	dangling := f.addGrade(t, uuid.New(), "C") // enrollment does not exist
	views := NewViews(f.repo, f.dir)

	roster, err := views.GradesForTeacher(context.Background(), f.teacherID)
	if err != nil {
		t.Fatalf("GradesForTeacher() error = %v, want degraded result", err)
	}
	if roster.Warning == "" {
		t.Error("warning missing, want partial-resolution warning")
	}
	if len(roster.Grades) != 2 {
		t.Fatalf("grades length = %d, want 2 (unresolved record kept)", len(roster.Grades))
	}
	for _, entry := range roster.Grades {
		if entry.ID == dangling.ID && entry.StudentDetail != nil {
			t.Error("dangling record has resolved student detail, want nil")
		}
	}
}

func TestAGradeStudentsForTeacherScoping(t *testing.T) {
	f := newFixture(t)
	f.addGrade(t, f.studentID, "A")
	f.addGrade(t, uuid.New(), "A") // unresolvable student, must be excluded

	// A-grade record owned by a different teacher must never leak in.
	otherTeacher := uuid.New()
	other := models.Grade{
		StudentID:   f.studentID,
		SubjectID:   f.subjectID,
		TeacherID:   otherTeacher,
		ClassID:     f.classID,
		GradeLetter: "A",
	}
	if err := f.repo.Create(context.Background(), &other); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	views := NewViews(f.repo, f.dir)
	entries, err := views.AGradeStudentsForTeacher(context.Background(), f.teacherID)
	if err != nil {
		t.Fatalf("AGradeStudentsForTeacher() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries length = %d, want 1", len(entries))
	}
	if entries[0].TeacherID != f.teacherID {
		t.Errorf("entry teacher = %s, want %s", entries[0].TeacherID, f.teacherID)
	}
	if entries[0].StudentDetail.User.Name != "Brian Otieno" {
		t.Errorf("student user = %+v, want Brian Otieno", entries[0].StudentDetail.User)
	}
}

func TestAGradeStudentsExcludesNonStudentRoles(t *testing.T) {
	f := newFixture(t)
	// Enrollment resolving to a user whose role is not student.
	principalUser := uuid.New()
	f.dir.users[principalUser] = models.User{ID: principalUser, Name: "Head", Role: "principal"}
	enrollID := uuid.New()
	f.dir.enrollments[enrollID] = models.StudentDetail{ID: enrollID, UserID: principalUser, ClassID: f.classID}
	f.addGrade(t, enrollID, "A")

	views := NewViews(f.repo, f.dir)
	entries, err := views.AGradeStudentsForTeacher(context.Background(), f.teacherID)
	if err != nil {
		t.Fatalf("AGradeStudentsForTeacher() error = %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries length = %d, want 0 (non-student user excluded)", len(entries))
	}
}

func TestGradesForStudentSortedBySubject(t *testing.T) {
	f := newFixture(t)
	second := uuid.New()
	f.dir.subjects[second] = models.Subject{ID: second, Name: "Biology", Code: "BIO101"}

	g1 := models.Grade{StudentID: f.studentID, SubjectID: f.subjectID, TeacherID: f.teacherID, ClassID: f.classID, GradeLetter: "B"}
	g2 := models.Grade{StudentID: f.studentID, SubjectID: second, TeacherID: f.teacherID, ClassID: f.classID, GradeLetter: "C"}
	for _, g := range []*models.Grade{&g1, &g2} {
		if err := f.repo.Create(context.Background(), g); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	views := NewViews(f.repo, f.dir)
	entries, err := views.GradesForStudent(context.Background(), f.studentID)
	if err != nil {
		t.Fatalf("GradesForStudent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries length = %d, want 2", len(entries))
	}
	if entries[0].SubjectDetail.Name != "Biology" || entries[1].SubjectDetail.Name != "Mathematics" {
		t.Errorf("order = [%s %s], want [Biology Mathematics]",
			entries[0].SubjectDetail.Name, entries[1].SubjectDetail.Name)
	}
}

func TestGradesForStudentUser(t *testing.T) {
	f := newFixture(t)
	f.addGrade(t, f.studentID, "B")
	views := NewViews(f.repo, f.dir)

	report, err := views.GradesForStudentUser(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("GradesForStudentUser() error = %v", err)
	}
	if report.Class == nil || report.Class.Name != "Form 2 East" {
		t.Errorf("class = %+v, want Form 2 East", report.Class)
	}
	if len(report.Grades) != 1 {
		t.Errorf("grades length = %d, want 1", len(report.Grades))
	}

	if _, err := views.GradesForStudentUser(context.Background(), uuid.New()); !IsNotFound(err) {
		t.Fatalf("GradesForStudentUser(unknown) error = %v, want NotFoundError", err)
	}
}

func TestTeachersAndSubjectsForStudent(t *testing.T) {
	f := newFixture(t)
	physID := uuid.New()
	f.dir.subjects[physID] = models.Subject{ID: physID, Name: "Physics", Code: "PHY101"}
	secondTeacher := uuid.New()
	f.dir.users[secondTeacher] = models.User{ID: secondTeacher, Name: "Mr. Baraka", Role: "teacher"}
	missingSubject := uuid.New()

	f.dir.assignments = []models.TeacherAssignment{
		{ID: uuid.New(), TeacherID: f.teacherID, SubjectID: f.subjectID, ClassID: f.classID},
		{ID: uuid.New(), TeacherID: f.teacherID, SubjectID: f.subjectID, ClassID: f.classID}, // duplicate triple
		{ID: uuid.New(), TeacherID: f.teacherID, SubjectID: physID, ClassID: f.classID},
		{ID: uuid.New(), TeacherID: secondTeacher, SubjectID: missingSubject, ClassID: f.classID}, // skipped silently
		{ID: uuid.New(), TeacherID: secondTeacher, SubjectID: physID, ClassID: uuid.New()},        // other class
	}

	views := NewViews(f.repo, f.dir)
	got, err := views.TeachersAndSubjectsForStudent(context.Background(), f.userID)
	if err != nil {
		t.Fatalf("TeachersAndSubjectsForStudent() error = %v", err)
	}
	if got.Class != "Form 2 East" {
		t.Errorf("class = %q, want Form 2 East", got.Class)
	}
	if len(got.Teachers) != 1 {
		t.Fatalf("teachers length = %d, want 1", len(got.Teachers))
	}
	tc := got.Teachers[0]
	if tc.Teacher.Name != "Ms. Achieng" {
		t.Errorf("teacher = %q, want Ms. Achieng", tc.Teacher.Name)
	}
	if len(tc.Courses) != 2 || tc.Courses[0].Name != "Mathematics" || tc.Courses[1].Name != "Physics" {
		t.Errorf("courses = %+v, want deduplicated [Mathematics Physics]", tc.Courses)
	}
}

func TestCourseTeacherMap(t *testing.T) {
	f := newFixture(t)
	orphanID := uuid.New()
	f.dir.subjects[orphanID] = models.Subject{ID: orphanID, Name: "Chemistry", Code: "CHE101"}
	cls := f.dir.classes[f.classID]
	cls.Courses = []*models.Subject{
		{ID: f.subjectID, Name: "Mathematics", Code: "MAT101"},
		{ID: orphanID, Name: "Chemistry", Code: "CHE101"},
	}
	f.dir.classes[f.classID] = cls
	f.dir.assignments = []models.TeacherAssignment{
		{ID: uuid.New(), TeacherID: f.teacherID, SubjectID: f.subjectID, ClassID: f.classID},
	}

	views := NewViews(f.repo, f.dir)
	got, err := views.CourseTeacherMap(context.Background(), f.classID)
	if err != nil {
		t.Fatalf("CourseTeacherMap() error = %v", err)
	}
	if got.Class.Name != "Form 2 East" {
		t.Errorf("class = %q, want Form 2 East", got.Class.Name)
	}
	if len(got.Courses) != 2 {
		t.Fatalf("courses length = %d, want 2", len(got.Courses))
	}
	if len(got.Courses[0].Teachers) != 1 || got.Courses[0].Teachers[0].Name != "Ms. Achieng" {
		t.Errorf("math teachers = %+v, want [Ms. Achieng]", got.Courses[0].Teachers)
	}
	if got.Courses[1].Teachers == nil || len(got.Courses[1].Teachers) != 0 {
		t.Errorf("chemistry teachers = %+v, want empty non-nil list", got.Courses[1].Teachers)
	}

	if _, err := views.CourseTeacherMap(context.Background(), uuid.New()); !IsNotFound(err) {
		t.Fatalf("CourseTeacherMap(unknown) error = %v, want NotFoundError", err)
	}
}

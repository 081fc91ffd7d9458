package grading

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"school_backend/models"
)

// Views builds read-only projections over the grade records, cross-referenced
// against the directory. A reference that cannot be resolved is left out of
// the resolved display data rather than failing the whole call.
type Views struct {
	grades GradeRepository
	dir    Directory
}

func NewViews(grades GradeRepository, dir Directory) *Views {
	return &Views{grades: grades, dir: dir}
}

type PersonRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
}

type CourseRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
}

type ClassRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type RosterStudent struct {
	ID   uuid.UUID  `json:"id"`
	User *PersonRef `json:"user,omitempty"`
}

// RosterEntry is a grade record plus whatever display data the view resolved
// for it. Unresolved references leave their detail field nil while the raw
// ids on the embedded record stay intact.
type RosterEntry struct {
	models.Grade
	StudentDetail *RosterStudent `json:"student_detail,omitempty"`
	SubjectDetail *CourseRef     `json:"subject_detail,omitempty"`
	TeacherDetail *PersonRef     `json:"teacher_detail,omitempty"`
	ClassDetail   *ClassRef      `json:"class_detail,omitempty"`
}

type TeacherRoster struct {
	Warning string        `json:"warning,omitempty"`
	Grades  []RosterEntry `json:"grades"`
}

type StudentReport struct {
	Class  *models.Class `json:"class"`
	Grades []RosterEntry `json:"grades"`
}

type NameRef struct {
	Name string `json:"name"`
}

type TeacherCourses struct {
	Teacher NameRef   `json:"teacher"`
	Courses []NameRef `json:"courses"`
}

type StudentTeachers struct {
	Class    string           `json:"class"`
	Teachers []TeacherCourses `json:"teachers"`
}

type CourseTeachers struct {
	Course   CourseRef   `json:"course"`
	Teachers []PersonRef `json:"teachers"`
}

type ClassCourses struct {
	Class   ClassRef         `json:"class"`
	Courses []CourseTeachers `json:"courses"`
}

// GradesForStudent returns every grade record of a student with subject and
// teacher display data, sorted by subject name.
func (v *Views) GradesForStudent(ctx context.Context, studentID uuid.UUID) ([]RosterEntry, error) {
	grades, err := v.grades.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, &StorageError{Op: "grades for student", Err: err}
	}

	res := newResolver(v.dir)
	entries := make([]RosterEntry, 0, len(grades))
	for _, g := range grades {
		entries = append(entries, RosterEntry{
			Grade:         g,
			SubjectDetail: res.subject(ctx, g.SubjectID),
			TeacherDetail: res.user(ctx, g.TeacherID),
		})
	}
	sortEntries(entries)
	return entries, nil
}

// GradesForStudentUser resolves a user to their enrollment and returns the
// enrolled class alongside the student's grades.
func (v *Views) GradesForStudentUser(ctx context.Context, userID uuid.UUID) (*StudentReport, error) {
	detail, err := v.dir.EnrollmentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Entity: "student", ID: userID.String()}
		}
		return nil, &StorageError{Op: "grades for student user", Err: err}
	}

	grades, err := v.grades.ListByStudent(ctx, detail.ID)
	if err != nil {
		return nil, &StorageError{Op: "grades for student user", Err: err}
	}

	res := newResolver(v.dir)
	entries := make([]RosterEntry, 0, len(grades))
	for _, g := range grades {
		entries = append(entries, RosterEntry{
			Grade:         g,
			SubjectDetail: res.subject(ctx, g.SubjectID),
			TeacherDetail: res.user(ctx, g.TeacherID),
			ClassDetail:   res.class(ctx, g.ClassID),
		})
	}
	sortEntries(entries)

	report := &StudentReport{Grades: entries}
	if cls, err := v.dir.ClassByID(ctx, detail.ClassID); err == nil {
		report.Class = cls
	}
	return report, nil
}

// GradesForTeacher returns every record the teacher has ever graded,
// including records for classes the teacher is no longer assigned to. When
// some cross-references cannot be resolved the affected entries are returned
// unresolved and the roster carries a warning instead of failing.
func (v *Views) GradesForTeacher(ctx context.Context, teacherID uuid.UUID) (*TeacherRoster, error) {
	grades, err := v.grades.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, &StorageError{Op: "grades for teacher", Err: err}
	}

	res := newResolver(v.dir)
	entries := make([]RosterEntry, 0, len(grades))
	for _, g := range grades {
		entries = append(entries, RosterEntry{
			Grade:         g,
			StudentDetail: res.student(ctx, g.StudentID),
			SubjectDetail: res.subject(ctx, g.SubjectID),
			ClassDetail:   res.class(ctx, g.ClassID),
		})
	}
	sortEntries(entries)

	roster := &TeacherRoster{Grades: entries}
	if res.degraded {
		roster.Warning = "Some references could not be resolved. Data may be incomplete."
	}
	return roster, nil
}

// GradesForClass returns every grade record of a class with resolved display
// data for student, subject and teacher.
func (v *Views) GradesForClass(ctx context.Context, classID uuid.UUID) ([]RosterEntry, error) {
	grades, err := v.grades.ListByClass(ctx, classID)
	if err != nil {
		return nil, &StorageError{Op: "grades for class", Err: err}
	}

	res := newResolver(v.dir)
	entries := make([]RosterEntry, 0, len(grades))
	for _, g := range grades {
		entries = append(entries, RosterEntry{
			Grade:         g,
			StudentDetail: res.student(ctx, g.StudentID),
			SubjectDetail: res.subject(ctx, g.SubjectID),
			TeacherDetail: res.user(ctx, g.TeacherID),
		})
	}
	sortEntries(entries)
	return entries, nil
}

// AGradeStudentsForTeacher lists the teacher's letter-A records with the
// student resolved through their enrollment to a user with the student role.
// Records whose student cannot be resolved that way are excluded.
func (v *Views) AGradeStudentsForTeacher(ctx context.Context, teacherID uuid.UUID) ([]RosterEntry, error) {
	grades, err := v.grades.ListByTeacherAndLetter(ctx, teacherID, "A")
	if err != nil {
		return nil, &StorageError{Op: "a-grade students for teacher", Err: err}
	}

	res := newResolver(v.dir)
	entries := make([]RosterEntry, 0, len(grades))
	for _, g := range grades {
		student := res.student(ctx, g.StudentID)
		if student == nil || student.User == nil {
			continue
		}
		usr, _ := v.dir.UserByID(ctx, student.User.ID)
		if usr == nil || usr.Role != "student" {
			continue
		}
		entries = append(entries, RosterEntry{
			Grade:         g,
			StudentDetail: student,
			SubjectDetail: res.subject(ctx, g.SubjectID),
			ClassDetail:   res.class(ctx, g.ClassID),
		})
	}
	sortEntries(entries)
	return entries, nil
}

// TeachersAndSubjectsForStudent resolves the student's current class and
// groups that class's teacher assignments by teacher with the subjects each
// one teaches. Assignments with a missing teacher or subject are skipped.
func (v *Views) TeachersAndSubjectsForStudent(ctx context.Context, userID uuid.UUID) (*StudentTeachers, error) {
	detail, err := v.dir.EnrollmentByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Entity: "student", ID: userID.String()}
		}
		return nil, &StorageError{Op: "teachers for student", Err: err}
	}

	cls, err := v.dir.ClassByID(ctx, detail.ClassID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Entity: "class", ID: detail.ClassID.String()}
		}
		return nil, &StorageError{Op: "teachers for student", Err: err}
	}

	assignments, err := v.dir.AssignmentsByClass(ctx, cls.ID)
	if err != nil {
		return nil, &StorageError{Op: "teachers for student", Err: err}
	}

	res := newResolver(v.dir)
	grouped := make(map[uuid.UUID]*TeacherCourses)
	var teacherOrder []uuid.UUID
	for _, a := range dedupeAssignments(assignments) {
		teacher := res.user(ctx, a.TeacherID)
		subject := res.subject(ctx, a.SubjectID)
		if teacher == nil || subject == nil {
			continue
		}
		tc, ok := grouped[a.TeacherID]
		if !ok {
			tc = &TeacherCourses{Teacher: NameRef{Name: teacher.Name}}
			grouped[a.TeacherID] = tc
			teacherOrder = append(teacherOrder, a.TeacherID)
		}
		tc.Courses = append(tc.Courses, NameRef{Name: subject.Name})
	}

	teachers := make([]TeacherCourses, 0, len(teacherOrder))
	for _, id := range teacherOrder {
		tc := grouped[id]
		sort.Slice(tc.Courses, func(i, j int) bool { return tc.Courses[i].Name < tc.Courses[j].Name })
		teachers = append(teachers, *tc)
	}
	sort.Slice(teachers, func(i, j int) bool { return teachers[i].Teacher.Name < teachers[j].Teacher.Name })

	return &StudentTeachers{Class: cls.Name, Teachers: teachers}, nil
}

// CourseTeacherMap lists every subject of a class with the teachers assigned
// to it. Subjects nobody is assigned to still appear, with an empty list.
func (v *Views) CourseTeacherMap(ctx context.Context, classID uuid.UUID) (*ClassCourses, error) {
	cls, err := v.dir.ClassByID(ctx, classID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &NotFoundError{Entity: "class", ID: classID.String()}
		}
		return nil, &StorageError{Op: "course teacher map", Err: err}
	}

	assignments, err := v.dir.AssignmentsByClass(ctx, classID)
	if err != nil {
		return nil, &StorageError{Op: "course teacher map", Err: err}
	}

	res := newResolver(v.dir)
	bySubject := make(map[uuid.UUID][]PersonRef)
	for _, a := range dedupeAssignments(assignments) {
		teacher := res.user(ctx, a.TeacherID)
		if teacher == nil {
			continue
		}
		bySubject[a.SubjectID] = append(bySubject[a.SubjectID], *teacher)
	}

	courses := make([]CourseTeachers, 0, len(cls.Courses))
	for _, course := range cls.Courses {
		teachers := bySubject[course.ID]
		if teachers == nil {
			teachers = []PersonRef{}
		}
		sort.Slice(teachers, func(i, j int) bool { return teachers[i].Name < teachers[j].Name })
		courses = append(courses, CourseTeachers{
			Course:   CourseRef{ID: course.ID, Name: course.Name, Code: course.Code},
			Teachers: teachers,
		})
	}

	return &ClassCourses{
		Class:   ClassRef{ID: cls.ID, Name: cls.Name},
		Courses: courses,
	}, nil
}

// Duplicate (teacher, subject, class) triples carry no extra information;
// keep one representative each.
func dedupeAssignments(assignments []models.TeacherAssignment) []models.TeacherAssignment {
	type key struct{ teacher, subject, class uuid.UUID }
	seen := make(map[key]bool, len(assignments))
	out := assignments[:0:0]
	for _, a := range assignments {
		k := key{a.TeacherID, a.SubjectID, a.ClassID}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}

func sortEntries(entries []RosterEntry) {
	sort.Slice(entries, func(i, j int) bool {
		var ni, nj string
		if entries[i].SubjectDetail != nil {
			ni = entries[i].SubjectDetail.Name
		}
		if entries[j].SubjectDetail != nil {
			nj = entries[j].SubjectDetail.Name
		}
		if ni != nj {
			return ni < nj
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

// resolver memoizes directory lookups within a single view call and records
// whether any reference failed to resolve.
type resolver struct {
	dir      Directory
	degraded bool

	subjects    map[uuid.UUID]*CourseRef
	users       map[uuid.UUID]*PersonRef
	classes     map[uuid.UUID]*ClassRef
	enrollments map[uuid.UUID]*RosterStudent
}

func newResolver(dir Directory) *resolver {
	return &resolver{
		dir:         dir,
		subjects:    make(map[uuid.UUID]*CourseRef),
		users:       make(map[uuid.UUID]*PersonRef),
		classes:     make(map[uuid.UUID]*ClassRef),
		enrollments: make(map[uuid.UUID]*RosterStudent),
	}
}

func (r *resolver) subject(ctx context.Context, id uuid.UUID) *CourseRef {
	if ref, ok := r.subjects[id]; ok {
		return ref
	}
	var ref *CourseRef
	if s, err := r.dir.SubjectByID(ctx, id); err == nil {
		ref = &CourseRef{ID: s.ID, Name: s.Name, Code: s.Code}
	} else {
		r.degraded = true
	}
	r.subjects[id] = ref
	return ref
}

func (r *resolver) user(ctx context.Context, id uuid.UUID) *PersonRef {
	if ref, ok := r.users[id]; ok {
		return ref
	}
	var ref *PersonRef
	if u, err := r.dir.UserByID(ctx, id); err == nil {
		ref = &PersonRef{ID: u.ID, Name: u.Name, Email: u.Email}
	} else {
		r.degraded = true
	}
	r.users[id] = ref
	return ref
}

func (r *resolver) class(ctx context.Context, id uuid.UUID) *ClassRef {
	if ref, ok := r.classes[id]; ok {
		return ref
	}
	var ref *ClassRef
	if c, err := r.dir.ClassByID(ctx, id); err == nil {
		ref = &ClassRef{ID: c.ID, Name: c.Name}
	} else {
		r.degraded = true
	}
	r.classes[id] = ref
	return ref
}

func (r *resolver) student(ctx context.Context, id uuid.UUID) *RosterStudent {
	if ref, ok := r.enrollments[id]; ok {
		return ref
	}
	var ref *RosterStudent
	if d, err := r.dir.EnrollmentByID(ctx, id); err == nil {
		ref = &RosterStudent{ID: d.ID, User: r.user(ctx, d.UserID)}
	} else {
		r.degraded = true
	}
	r.enrollments[id] = ref
	return ref
}

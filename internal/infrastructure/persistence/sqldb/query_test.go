package sqldb_test

import (
	"context"
	"testing"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	instructor *education.Instructor
	courses    []*education.Course
	student    *education.Student
	exam       *education.Exam
}

func seedFixture(t *testing.T, uow education.UnitOfWork) fixture {
	t.Helper()

	fx := fixture{
		instructor: &education.Instructor{Name: "Grace", Surname: "Hopper"},
		student:    &education.Student{Name: "Ada", Surname: "Lovelace", BirthDate: day(2000, 5, 17), TC: "12345678901"},
	}
	require.NoError(t, uow.Instructors().Create(fx.instructor))
	require.NoError(t, uow.Students().Create(fx.student))

	for _, name := range []string{"Algorithms", "Compilers"} {
		c := &education.Course{CourseName: name, StartDate: day(2024, 1, 1), EndDate: day(2024, 6, 1), IsActive: true, InstructorID: &fx.instructor.ID}
		require.NoError(t, uow.Courses().Create(c))
		fx.courses = append(fx.courses, c)
	}
	orphan := &education.Course{CourseName: "Self Study", StartDate: day(2024, 1, 1), EndDate: day(2024, 2, 1)}
	require.NoError(t, uow.Courses().Create(orphan))
	fx.courses = append(fx.courses, orphan)

	fx.exam = &education.Exam{Name: "Final", Date: day(2024, 6, 1), StudentID: &fx.student.ID}
	require.NoError(t, uow.Exams().Create(fx.exam))
	for _, g := range []string{"70", "85.5", "90"} {
		require.NoError(t, uow.Exams().AddResult(&education.ExamResult{ExamID: fx.exam.ID, Grade: decimal.RequireFromString(g)}))
	}
	require.NoError(t, uow.Exams().Create(&education.Exam{Name: "Quiz", Date: day(2024, 2, 1)}))

	require.NoError(t, uow.Registrations().Create(&education.Registration{
		StudentID:        fx.student.ID,
		CourseID:         fx.courses[0].ID,
		RegistrationDate: day(2024, 1, 2),
		Price:            decimal.NewFromInt(100),
	}))

	_, err := uow.Commit(context.Background())
	require.NoError(t, err)
	return fx
}

func TestQuery_WhereAndWhereNot(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()
	fx := seedFixture(t, uow)

	base := uow.Courses().GetAll(false)
	rec.Reset()
	byName := base.Where("CourseName", "Compilers")
	assert.Zero(t, rec.Total(), "building a query is free")

	got, err := byName.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fx.courses[1].ID, got[0].ID)

	// The base query is not affected by refinements.
	n, err := base.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = base.WhereNot("CourseName", "Compilers").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	unassigned, err := base.Where("InstructorID", nil).List(ctx)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "Self Study", unassigned[0].CourseName)

	n, err = base.WhereNot("InstructorID", nil).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var nilRef *string
	n, err = base.Where("InstructorID", nilRef).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	active, err := base.Where("IsActive", false).Any(ctx)
	require.NoError(t, err)
	assert.True(t, active)

	none, err := base.Where("CourseName", "Nope").First(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestQuery_UnknownField(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()

	q := uow.Courses().GetAll(false).Where("Colour", "red").Where("CourseName", "x")

	_, err := q.List(ctx)
	assert.ErrorIs(t, err, shared.ErrUnknownField)
	_, err = q.Count(ctx)
	assert.ErrorIs(t, err, shared.ErrUnknownField)
	_, err = q.Any(ctx)
	assert.ErrorIs(t, err, shared.ErrUnknownField)
	assert.True(t, shared.IsValidation(err))

	assert.Zero(t, rec.Total())
}

func TestQuery_SeqStopsEarly(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()
	seedFixture(t, uow)

	seen := 0
	for c, err := range uow.Courses().GetAll(false).Seq(ctx) {
		require.NoError(t, err)
		require.NotNil(t, c)
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestCourseDetail_JoinsInstructor(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()
	fx := seedFixture(t, uow)

	rec.Reset()
	courses, err := uow.Courses().GetAllCourseDetail(false).List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Equal(t, 1, rec.Total())

	for _, c := range courses {
		if c.InstructorID == nil {
			assert.Nil(t, c.Instructor)
			assert.Equal(t, "", c.InstructorName())
			continue
		}
		require.NotNil(t, c.Instructor)
		assert.Equal(t, fx.instructor.ID, c.Instructor.ID)
		assert.Equal(t, "Grace", c.InstructorName())
	}

	byInstructor, err := uow.Courses().GetAllByInstructor(fx.instructor.ID, false).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, byInstructor)
}

func TestExamDetail_GroupsResults(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()
	fx := seedFixture(t, uow)

	rec.Reset()
	q := uow.Exams().GetAllExamDetail(false)
	exams, err := q.List(ctx)
	require.NoError(t, err)
	require.Len(t, exams, 2, "joined result rows collapse into one exam")
	assert.Equal(t, 1, rec.Total())

	n, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	final, err := q.Where("ID", fx.exam.ID).First(ctx)
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Len(t, final.ExamResults, 3)
	assert.Equal(t, "Ada Lovelace", final.StudentName())
	require.NotNil(t, final.AverageGrade())
	assert.True(t, decimal.RequireFromString("81.83").Equal(*final.AverageGrade()))

	quiz, err := q.Where("Name", "Quiz").First(ctx)
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Empty(t, quiz.ExamResults)
	assert.Nil(t, quiz.Student)
}

func TestRegistrationAndLessonDetail(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()
	fx := seedFixture(t, uow)

	regs, err := uow.Registrations().GetAllRegistrationDetail(false).List(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Algorithms", regs[0].CourseName())
	assert.Equal(t, "Ada Lovelace", regs[0].StudentName())
	assert.True(t, decimal.NewFromInt(100).Equal(regs[0].Price))

	one, err := uow.Registrations().GetByIDRegistrationDetail(ctx, regs[0].ID, false)
	require.NoError(t, err)
	require.NotNil(t, one)
	assert.Equal(t, fx.student.ID, one.Student.ID)

	lesson := &education.Lesson{Name: "Sorting", Date: day(2024, 1, 8), Duration: 90, CourseID: &fx.courses[0].ID}
	require.NoError(t, uow.Lessons().Create(lesson))
	_, err = uow.Commit(ctx)
	require.NoError(t, err)

	got, err := uow.Lessons().GetByIDLessonDetails(ctx, lesson.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Algorithms", got.CourseName())

	missing, err := uow.Lessons().GetByIDLessonDetails(ctx, "no-such-id", false)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCascadeOnCourseRemoval(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()
	uow := f.New()
	defer uow.Close()
	fx := seedFixture(t, uow)

	require.NoError(t, uow.Courses().Remove(&education.Course{BaseEntity: education.BaseEntity{ID: fx.courses[0].ID}}))
	rows, err := uow.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, rows, "cascaded rows are not counted")

	n, err := uow.Registrations().GetAll(false).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

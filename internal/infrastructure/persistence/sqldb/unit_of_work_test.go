package sqldb_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb"
	"github.com/course-hub/coursehub/internal/infrastructure/persistence/sqldb/sqldbtest"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFactory(t *testing.T) (*sqldb.UnitOfWorkFactory, *sqldbtest.Recorder) {
	t.Helper()
	store, rec := sqldbtest.Open(t)
	return sqldb.NewUnitOfWorkFactory(store, logger.Nop()), rec
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCommit_SumsRowsAcrossRepositories(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()

	uow := f.New()
	defer uow.Close()

	instructor := &education.Instructor{Name: "Grace", Surname: "Hopper"}
	require.NoError(t, uow.Instructors().Create(instructor))
	require.True(t, instructor.HasID(), "create assigns the id while staging")

	course := &education.Course{
		CourseName:   "Algorithms",
		StartDate:    day(2024, 1, 1),
		EndDate:      day(2024, 6, 1),
		InstructorID: &instructor.ID,
	}
	require.NoError(t, uow.Courses().Create(course))
	require.NoError(t, uow.Students().Create(&education.Student{Name: "Ada", Surname: "Lovelace"}))

	assert.Zero(t, rec.Total(), "staging must not touch the store")

	rows, err := uow.Commit(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, rec.Count("exec"))

	// Staged operations are cleared after a successful commit.
	rows, err = uow.Commit(ctx)
	require.NoError(t, err)
	assert.Zero(t, rows)
}

func TestCommit_RollsBackEverythingOnFailure(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()

	uow := f.New()
	defer uow.Close()

	require.NoError(t, uow.Students().Create(&education.Student{Name: "Ada"}))
	require.NoError(t, uow.Registrations().Create(&education.Registration{
		StudentID: uuid.NewString(),
		CourseID:  uuid.NewString(),
		Price:     decimal.NewFromInt(100),
	}))

	rows, err := uow.Commit(ctx)
	require.Error(t, err)
	assert.Zero(t, rows)
	assert.True(t, errors.Is(err, shared.ErrReferenceMissing), err.Error())

	var de *shared.DomainError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "registration", de.Domain)

	// The student insert that succeeded inside the transaction is gone too.
	reader := f.New()
	defer reader.Close()
	n, err := reader.Students().GetAll(false).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCommit_ClassifiesConstraintErrors(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()

	uow := f.New()
	defer uow.Close()

	s := &education.Student{Name: "Ada"}
	require.NoError(t, uow.Students().Create(s))
	_, err := uow.Commit(ctx)
	require.NoError(t, err)

	dup := f.New()
	defer dup.Close()
	require.NoError(t, dup.Students().Create(&education.Student{BaseEntity: education.BaseEntity{ID: s.ID}, Name: "Copy"}))
	_, err = dup.Commit(ctx)
	assert.True(t, errors.Is(err, shared.ErrAlreadyExists), "duplicate id: %v", err)

	neg := f.New()
	defer neg.Close()
	require.NoError(t, neg.Lessons().Create(&education.Lesson{Name: "Broken", Duration: -1}))
	_, err = neg.Commit(ctx)
	assert.True(t, shared.IsValidation(err), "check constraint: %v", err)
}

func TestUnitOfWork_StagingErrors(t *testing.T) {
	f, _ := newFactory(t)

	uow := f.New()
	defer uow.Close()

	assert.ErrorIs(t, uow.Courses().Create(nil), shared.ErrNilEntity)
	assert.ErrorIs(t, uow.Courses().Update(&education.Course{}), shared.ErrMissingID)
	assert.ErrorIs(t, uow.Courses().Remove(&education.Course{BaseEntity: education.BaseEntity{ID: "  "}}), shared.ErrMissingID)
	assert.ErrorIs(t, uow.Exams().AddResult(nil), shared.ErrNilEntity)
}

func TestUnitOfWork_ClosedRejectsUse(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()

	uow := f.New()
	require.NoError(t, uow.Students().Create(&education.Student{Name: "Ada"}))
	require.NoError(t, uow.Close())
	require.NoError(t, uow.Close())

	_, err := uow.Commit(ctx)
	assert.ErrorIs(t, err, shared.ErrUnitOfWorkClosed)
	assert.ErrorIs(t, uow.Students().Create(&education.Student{}), shared.ErrUnitOfWorkClosed)

	_, err = uow.Students().GetAll(false).List(ctx)
	assert.ErrorIs(t, err, shared.ErrUnitOfWorkClosed)
	_, err = uow.Students().GetByID(ctx, uuid.NewString(), false)
	assert.ErrorIs(t, err, shared.ErrUnitOfWorkClosed)

	assert.Zero(t, rec.Total(), "discarded operations never reach the store")
}

func TestUnitOfWork_StagedChangesAreInvisibleUntilCommit(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()

	writer := f.New()
	defer writer.Close()
	s := &education.Student{Name: "Ada"}
	require.NoError(t, writer.Students().Create(s))

	reader := f.New()
	defer reader.Close()
	got, err := reader.Students().GetByID(ctx, s.ID, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = writer.Commit(ctx)
	require.NoError(t, err)

	got, err = reader.Students().GetByID(ctx, s.ID, false)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada", got.Name)
}

func TestUnitOfWork_TrackedLookupsShareInstance(t *testing.T) {
	f, rec := newFactory(t)
	ctx := context.Background()

	seed := f.New()
	s := &education.Student{Name: "Ada"}
	require.NoError(t, seed.Students().Create(s))
	_, err := seed.Commit(ctx)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	uow := f.New()
	defer uow.Close()

	rec.Reset()
	first, err := uow.Students().GetByID(ctx, s.ID, true)
	require.NoError(t, err)
	second, err := uow.Students().GetByID(ctx, s.ID, true)
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, rec.Count("query"), "tracked lookup is served from the identity map")

	listed, err := uow.Students().GetAll(true).List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Same(t, first, listed[0])

	untracked, err := uow.Students().GetByID(ctx, s.ID, false)
	require.NoError(t, err)
	assert.NotSame(t, first, untracked)
}

func TestUnitOfWork_PlainReloadKeepsLoadedRelations(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()

	seed := f.New()
	instructor := &education.Instructor{Name: "Grace", Surname: "Hopper"}
	require.NoError(t, seed.Instructors().Create(instructor))
	course := &education.Course{CourseName: "Compilers", InstructorID: &instructor.ID}
	require.NoError(t, seed.Courses().Create(course))
	_, err := seed.Commit(ctx)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	uow := f.New()
	defer uow.Close()

	detailed, err := uow.Courses().GetAllCourseDetail(true).List(ctx)
	require.NoError(t, err)
	require.Len(t, detailed, 1)
	require.NotNil(t, detailed[0].Instructor)

	reloaded, err := uow.Courses().GetAll(true).List(ctx)
	require.NoError(t, err)
	require.Len(t, reloaded, 1)
	assert.Same(t, detailed[0], reloaded[0])
	require.NotNil(t, reloaded[0].Instructor)
	assert.Equal(t, "Grace Hopper", reloaded[0].Instructor.FullName())

	// The relation is dropped once the foreign key moves.
	other := f.New()
	moved := *course
	moved.InstructorID = nil
	require.NoError(t, other.Courses().Update(&moved))
	_, err = other.Commit(ctx)
	require.NoError(t, err)
	require.NoError(t, other.Close())

	reloaded, err = uow.Courses().GetAll(true).List(ctx)
	require.NoError(t, err)
	assert.Nil(t, reloaded[0].InstructorID)
	assert.Nil(t, reloaded[0].Instructor)
}

func TestUnitOfWorkFactory_ConcurrentUse(t *testing.T) {
	f, _ := newFactory(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			uow := f.New()
			defer uow.Close()
			if err := uow.Students().Create(&education.Student{Name: "Student"}); err != nil {
				errs <- err
				return
			}
			if _, err := uow.Commit(ctx); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	uow := f.New()
	defer uow.Close()
	n, err := uow.Students().GetAll(false).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, workers, n)
}

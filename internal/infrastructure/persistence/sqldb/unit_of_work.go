package sqldb

import (
	"context"
	"errors"
	"time"

	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/internal/domain/shared"
	"github.com/course-hub/coursehub/pkg/logger"

	"github.com/jmoiron/sqlx"
)

// ══════════════════════════════════════════════════════════════════════════════
// STAGED OPERATIONS
// ══════════════════════════════════════════════════════════════════════════════

const (
	opInsert = "insert"
	opUpdate = "update"
	opDelete = "delete"
)

// operation is one staged write, rendered to SQL at staging time.
type operation struct {
	aggregate string
	kind      string
	entityID  string
	statement string
	args      []any
}

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK
// ══════════════════════════════════════════════════════════════════════════════

// unitOfWork implements education.UnitOfWork. It is not safe for concurrent
// use and lives for a single manager call.
type unitOfWork struct {
	store  *Store
	log    *logger.Logger
	ops    []operation
	closed bool

	courses       *courseRepository
	instructors   *instructorRepository
	lessons       *lessonRepository
	exams         *examRepository
	students      *studentRepository
	registrations *registrationRepository
}

var _ education.UnitOfWork = (*unitOfWork)(nil)

func newUnitOfWork(store *Store, log *logger.Logger) *unitOfWork {
	u := &unitOfWork{store: store, log: log}

	u.courses = newCourseRepository(u)
	u.instructors = newInstructorRepository(u)
	u.lessons = newLessonRepository(u)
	u.exams = newExamRepository(u)
	u.students = newStudentRepository(u)
	u.registrations = newRegistrationRepository(u)

	return u
}

func (u *unitOfWork) Courses() education.CourseRepository             { return u.courses }
func (u *unitOfWork) Instructors() education.InstructorRepository     { return u.instructors }
func (u *unitOfWork) Lessons() education.LessonRepository             { return u.lessons }
func (u *unitOfWork) Exams() education.ExamRepository                 { return u.exams }
func (u *unitOfWork) Students() education.StudentRepository           { return u.students }
func (u *unitOfWork) Registrations() education.RegistrationRepository { return u.registrations }

func (u *unitOfWork) isClosed() bool {
	return u.closed
}

func (u *unitOfWork) stage(op operation) error {
	if u.closed {
		return shared.ErrUnitOfWorkClosed
	}
	u.ops = append(u.ops, op)
	return nil
}

// Commit applies every staged operation, in staging order, inside one
// transaction and returns the summed affected row count. On any failure the
// transaction is rolled back and the staged operations are kept.
func (u *unitOfWork) Commit(ctx context.Context) (int, error) {
	if u.closed {
		return 0, shared.ErrUnitOfWorkClosed
	}
	if len(u.ops) == 0 {
		return 0, nil
	}

	start := time.Now()
	total := 0

	err := u.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		total = 0
		for _, op := range u.ops {
			n, err := u.store.exec(ctx, tx, op.statement, op.args...)
			if err != nil {
				return classifyWriteError(op, err)
			}
			total += int(n)
		}
		return nil
	})
	if err != nil {
		var de *shared.DomainError
		if !errors.As(err, &de) {
			err = shared.WrapError("uow", "Commit", shared.ErrTransaction, "commit failed", err)
		}
		u.log.Error("commit rolled back",
			logger.Int("operations", len(u.ops)),
			logger.Latency(time.Since(start)),
			logger.Err(err),
		)
		return 0, err
	}

	u.log.Debug("commit applied",
		logger.Int("operations", len(u.ops)),
		logger.RowsAffected(total),
		logger.Latency(time.Since(start)),
	)

	u.ops = nil
	return total, nil
}

// Close discards staged operations. Further use of the unit of work fails
// with shared.ErrUnitOfWorkClosed.
func (u *unitOfWork) Close() error {
	if u.closed {
		return nil
	}
	if len(u.ops) > 0 {
		u.log.Debug("discarding uncommitted operations", logger.Int("operations", len(u.ops)))
	}
	u.ops = nil
	u.closed = true
	return nil
}

// classifyWriteError wraps a failed write with the domain error kind the
// storage engine reported.
func classifyWriteError(op operation, err error) error {
	kind := shared.ErrTransaction
	msg := op.kind + " failed"

	switch {
	case IsForeignKeyViolation(err):
		kind = shared.ErrReferenceMissing
		msg = "referenced entity does not exist"
	case IsUniqueViolation(err):
		kind = shared.ErrAlreadyExists
		msg = "entity already exists"
	case IsCheckViolation(err), IsNotNullViolation(err):
		kind = shared.ErrValidation
		msg = "entity violates a storage constraint"
	}

	return shared.WrapError(op.aggregate, "Commit", kind, msg+" (id "+op.entityID+")", err)
}

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY
// ══════════════════════════════════════════════════════════════════════════════

// UnitOfWorkFactory creates a fresh unit of work per call. It only holds the
// shared pool and is safe for concurrent use.
type UnitOfWorkFactory struct {
	store *Store
	log   *logger.Logger
}

var _ education.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// NewUnitOfWorkFactory creates a new factory over store.
func NewUnitOfWorkFactory(store *Store, log *logger.Logger) *UnitOfWorkFactory {
	if log == nil {
		log = logger.Nop()
	}
	return &UnitOfWorkFactory{
		store: store,
		log:   log.With(logger.Component("uow")),
	}
}

// New returns a new unit of work.
func (f *UnitOfWorkFactory) New() education.UnitOfWork {
	return newUnitOfWork(f.store, f.log)
}

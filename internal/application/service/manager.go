// Package service содержит доменные менеджеры - по одному на агрегат.
//
// Каждый вызов менеджера создаёт собственную единицу работы и закрывает её
// перед возвратом. Ожидаемые исходы (не найдено, пустой список, неверный
// ввод, 0 затронутых строк) возвращаются через result; ошибка Go означает
// сбой хранилища.
//
// Порядок проверок одинаков для всех агрегатов: nil и пустой ID, затем
// структурные проверки полей, затем маппинг, и только потом хранилище.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
)

// Managers собирает менеджеры всех агрегатов для внешних слоёв.
type Managers struct {
	Courses       *CourseManager
	Instructors   *InstructorManager
	Lessons       *LessonManager
	Exams         *ExamManager
	Students      *StudentManager
	Registrations *RegistrationManager
}

// NewManagers создаёт все менеджеры над одной фабрикой.
func NewManagers(factory education.UnitOfWorkFactory, log *logger.Logger) *Managers {
	return &Managers{
		Courses:       NewCourseManager(factory, log),
		Instructors:   NewInstructorManager(factory, log),
		Lessons:       NewLessonManager(factory, log),
		Exams:         NewExamManager(factory, log),
		Students:      NewStudentManager(factory, log),
		Registrations: NewRegistrationManager(factory, log),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SHARED PLUMBING
// ══════════════════════════════════════════════════════════════════════════════

// manager - общая часть всех менеджеров.
type manager struct {
	factory education.UnitOfWorkFactory
	log     *logger.Logger
}

func newManager(factory education.UnitOfWorkFactory, log *logger.Logger, aggregate string) manager {
	if log == nil {
		log = logger.Nop()
	}
	return manager{
		factory: factory,
		log:     log.With(logger.Component("service"), logger.Aggregate(aggregate)),
	}
}

// fault логирует сбой хранилища и возвращает его без изменений.
func (m manager) fault(op string, err error) error {
	m.log.Error("operation failed", logger.Operation(op), logger.Err(err))
	return err
}

// write ставит изменения через stage, выполняет Commit и превращает число
// строк в результат.
func (m manager) write(
	ctx context.Context,
	op string,
	stage func(uow education.UnitOfWork) error,
	okMsg, failMsg string,
) (result.Result, error) {
	uow := m.factory.New()
	defer uow.Close()

	start := time.Now()
	if err := stage(uow); err != nil {
		return result.Result{}, m.fault(op, err)
	}

	rows, err := uow.Commit(ctx)
	if err != nil {
		return result.Result{}, m.fault(op, err)
	}

	m.log.Debug("write committed",
		logger.Operation(op),
		logger.RowsAffected(rows),
		logger.Latency(time.Since(start)),
	)
	return result.FromRowCount(rows, okMsg, failMsg), nil
}

// list материализует запрос и считает пустой набор неудачей.
func list[E, D any](
	ctx context.Context,
	m manager,
	op string,
	query func(uow education.UnitOfWork) education.Query[E],
	toDTO func(*E) D,
	okMsg, emptyMsg string,
) (result.DataResult[[]D], error) {
	uow := m.factory.New()
	defer uow.Close()

	items, err := query(uow).List(ctx)
	if err != nil {
		return result.DataResult[[]D]{}, m.fault(op, err)
	}

	out := mapper.Slice(items, toDTO)
	if len(out) == 0 {
		return result.FailData[[]D](emptyMsg), nil
	}
	return result.OkData(out, okMsg), nil
}

// find выполняет поиск по ID. Пустой ID отклоняется до обращения к
// хранилищу, отсутствующая сущность даёт неудачу с nil в Data.
func find[E, D any](
	ctx context.Context,
	m manager,
	op string,
	id string,
	load func(uow education.UnitOfWork) (*E, error),
	toDTO func(*E) D,
	okMsg, notFoundMsg string,
) (result.DataResult[*D], error) {
	if blank(id) {
		return result.FailData[*D](MsgInvalidID), nil
	}

	uow := m.factory.New()
	defer uow.Close()

	e, err := load(uow)
	if err != nil {
		return result.DataResult[*D]{}, m.fault(op, err)
	}
	if e == nil {
		return result.FailData[*D](notFoundMsg), nil
	}

	d := toDTO(e)
	return result.OkData(&d, okMsg), nil
}

func blank(id string) bool {
	return strings.TrimSpace(id) == ""
}

package education

import (
	"context"
	"iter"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACES
// Эти интерфейсы определяют контракт для работы с хранилищем данных.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Query - отложенный (нематериализованный) запрос.
// Ни один метод, кроме терминальных (List, First, Any, Count, Seq),
// не обращается к хранилищу.
type Query[T any] interface {
	// Where добавляет условие равенства по логическому имени поля
	// (например, "CourseName"). Неизвестное поле приводит к ошибке
	// shared.ErrUnknownField в терминальном методе.
	Where(field string, value any) Query[T]

	// WhereNot добавляет условие неравенства.
	WhereNot(field string, value any) Query[T]

	// List материализует все строки.
	List(ctx context.Context) ([]*T, error)

	// First возвращает первую строку или nil, если строк нет.
	First(ctx context.Context) (*T, error)

	// Any возвращает true, если есть хотя бы одна строка.
	Any(ctx context.Context) (bool, error)

	// Count возвращает количество сущностей.
	Count(ctx context.Context) (int, error)

	// Seq возвращает итератор по строкам без полной материализации.
	Seq(ctx context.Context) iter.Seq2[*T, error]
}

// Repository - обобщённый контракт репозитория для одного типа сущности.
// Методы Create, Update и Remove только ставят изменение в очередь
// единицы работы; в хранилище оно попадает при UnitOfWork.Commit.
type Repository[T any] interface {
	// GetAll возвращает отложенный запрос по всем строкам.
	// trackChanges=false отключает identity map единицы работы.
	GetAll(trackChanges bool) Query[T]

	// GetByID возвращает сущность по ID или (nil, nil), если её нет.
	GetByID(ctx context.Context, id string, trackChanges bool) (*T, error)

	// Create ставит в очередь вставку.
	Create(entity *T) error

	// Update ставит в очередь полную перезапись строки (кроме ID и CreatedDate).
	Update(entity *T) error

	// Remove ставит в очередь удаление по ID; остальные поля не нужны.
	Remove(entity *T) error
}

// ─────────────────────────────────────────────────────────────────────────────
// Aggregate repositories
// Детальные запросы обязаны загружать связанные сущности JOIN-ом
// за один поход в хранилище, без отдельных запросов на каждую строку.
// ─────────────────────────────────────────────────────────────────────────────

// CourseRepository - репозиторий курсов.
type CourseRepository interface {
	Repository[Course]

	// GetAllCourseDetail возвращает курсы вместе с преподавателем.
	GetAllCourseDetail(trackChanges bool) Query[Course]

	// GetAllByInstructor возвращает курсы преподавателя (обратная связь).
	GetAllByInstructor(instructorID string, trackChanges bool) Query[Course]
}

// InstructorRepository - репозиторий преподавателей.
type InstructorRepository interface {
	Repository[Instructor]
}

// LessonRepository - репозиторий занятий.
type LessonRepository interface {
	Repository[Lesson]

	// GetAllLessonDetails возвращает занятия вместе с курсом.
	GetAllLessonDetails(trackChanges bool) Query[Lesson]

	// GetByIDLessonDetails возвращает занятие с курсом или (nil, nil).
	GetByIDLessonDetails(ctx context.Context, id string, trackChanges bool) (*Lesson, error)
}

// ExamRepository - репозиторий экзаменов.
type ExamRepository interface {
	Repository[Exam]

	// GetAllExamDetail возвращает экзамены со студентом и оценками.
	GetAllExamDetail(trackChanges bool) Query[Exam]

	// AddResult ставит в очередь вставку оценки.
	AddResult(result *ExamResult) error
}

// StudentRepository - репозиторий студентов.
type StudentRepository interface {
	Repository[Student]
}

// RegistrationRepository - репозиторий записей на курсы.
type RegistrationRepository interface {
	Repository[Registration]

	// GetAllRegistrationDetail возвращает записи вместе с курсом и студентом.
	GetAllRegistrationDetail(trackChanges bool) Query[Registration]

	// GetByIDRegistrationDetail возвращает запись с курсом и студентом или (nil, nil).
	GetByIDRegistrationDetail(ctx context.Context, id string, trackChanges bool) (*Registration, error)
}

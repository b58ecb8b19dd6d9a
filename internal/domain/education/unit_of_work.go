package education

import "context"

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK
// ══════════════════════════════════════════════════════════════════════════════

// UnitOfWork владеет одним репозиторием на каждый агрегат и единственной
// транзакционной границей - Commit.
//
// Единица работы живёт ровно один запрос: её нельзя хранить в общем
// состоянии процесса и нельзя использовать из нескольких горутин.
type UnitOfWork interface {
	Courses() CourseRepository
	Instructors() InstructorRepository
	Lessons() LessonRepository
	Exams() ExamRepository
	Students() StudentRepository
	Registrations() RegistrationRepository

	// Commit атомарно применяет все изменения, поставленные в очередь
	// с момента последнего Commit, и возвращает число затронутых строк.
	// 0 означает "ничего не изменилось". При ошибке не применяется ничего.
	Commit(ctx context.Context) (int, error)

	// Close освобождает единицу работы. Неприменённые изменения отбрасываются.
	Close() error
}

// UnitOfWorkFactory создаёт новую единицу работы на каждый запрос.
// Фабрика безопасна для конкурентного использования.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

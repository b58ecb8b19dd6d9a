// Package education содержит доменную модель учебного центра.
//
// Пакет определяет:
//
//   - Сущности (Entities): Course, Instructor, Lesson, Exam, ExamResult, Student, Registration
//   - Обобщённый контракт репозитория: Repository[T] и отложенный запрос Query[T]
//   - Расширения репозиториев для "детальных" запросов (Course + Instructor и т.д.)
//   - Единицу работы (UnitOfWork) - единую транзакционную границу для всех репозиториев
//
// # Архитектурные принципы
//
//  1. Нулевые внешние зависимости, кроме decimal для денежных значений
//  2. Dependency Inversion - интерфейсы реализуются в infrastructure/persistence
//  3. Никакой ленивой навигации: связанные сущности заполняются только
//     детальными запросами за один поход в хранилище
//
// # Жизненный цикл сущности
//
// Менеджер создаёт сущность из DTO, передаёт её репозиторию для постановки
// в очередь изменений, и только успешный Commit делает её видимой другим:
//
//	uow := factory.New()
//	defer uow.Close()
//
//	_ = uow.Courses().Create(course)
//	rows, err := uow.Commit(ctx)
package education

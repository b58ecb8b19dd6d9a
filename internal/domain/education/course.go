package education

import "time"

// Course - учебный курс, который ведёт преподаватель.
type Course struct {
	BaseEntity

	CourseName string
	StartDate  time.Time
	EndDate    time.Time
	IsActive   bool

	// InstructorID - ссылка на преподавателя (может отсутствовать).
	InstructorID *string

	// Instructor заполняется только детальным запросом.
	Instructor *Instructor
}

// HasValidDates проверяет, что дата окончания строго позже даты начала.
func (c *Course) HasValidDates() bool {
	return c.EndDate.After(c.StartDate)
}

// InstructorName возвращает имя преподавателя или пустую строку,
// если связанная сущность не загружена.
func (c *Course) InstructorName() string {
	if c.Instructor == nil {
		return ""
	}
	return c.Instructor.Name
}

package education

import "time"

// Lesson - отдельное занятие в рамках курса.
type Lesson struct {
	BaseEntity

	Name    string
	Date    time.Time
	Content string

	// Duration - продолжительность в минутах.
	Duration int

	// Time - метка слота в расписании, например "10:00-11:30".
	Time string

	CourseID *string

	// Course заполняется только детальным запросом.
	Course *Course
}

// CourseName возвращает название курса или пустую строку.
func (l *Lesson) CourseName() string {
	if l.Course == nil {
		return ""
	}
	return l.Course.CourseName
}

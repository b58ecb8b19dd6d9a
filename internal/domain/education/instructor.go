package education

import "strings"

// Instructor - преподаватель учебного центра.
type Instructor struct {
	BaseEntity

	Name        string
	Surname     string
	Email       string
	Professions string
	PhoneNumber string
}

// FullName возвращает имя и фамилию через пробел.
func (i *Instructor) FullName() string {
	return strings.TrimSpace(i.Name + " " + i.Surname)
}

package education

import (
	"strings"
	"time"
)

// Student - слушатель курсов.
type Student struct {
	BaseEntity

	Name      string
	Surname   string
	BirthDate time.Time
	// TC - национальный идентификационный номер (строка, не число).
	TC string
}

// FullName возвращает имя и фамилию через пробел.
func (s *Student) FullName() string {
	return strings.TrimSpace(s.Name + " " + s.Surname)
}

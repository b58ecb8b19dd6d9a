package education

import (
	"time"

	"github.com/shopspring/decimal"
)

// Registration - запись студента на курс.
type Registration struct {
	BaseEntity

	StudentID        string
	CourseID         string
	RegistrationDate time.Time
	// Price должна быть строго положительной.
	Price decimal.Decimal

	// Course и Student заполняются только детальным запросом.
	Course  *Course
	Student *Student
}

// HasValidPrice проверяет, что цена строго больше нуля.
func (r *Registration) HasValidPrice() bool {
	return r.Price.IsPositive()
}

// MoneyScale - число знаков после запятой у цен и оценок в хранилище.
const MoneyScale = 2

// FitsMoneyScale сообщает, сохранится ли значение без округления.
func FitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// CourseName возвращает название курса или пустую строку.
func (r *Registration) CourseName() string {
	if r.Course == nil {
		return ""
	}
	return r.Course.CourseName
}

// StudentName возвращает имя студента или пустую строку.
func (r *Registration) StudentName() string {
	if r.Student == nil {
		return ""
	}
	return r.Student.FullName()
}

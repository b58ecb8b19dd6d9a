package education

import (
	"time"

	"github.com/shopspring/decimal"
)

// Exam - экзамен, который сдаёт студент.
type Exam struct {
	BaseEntity

	Name string
	Date time.Time

	StudentID *string

	// Student и ExamResults заполняются только детальным запросом.
	Student     *Student
	ExamResults []ExamResult
}

// ExamResult - оценка за экзамен.
type ExamResult struct {
	BaseEntity

	ExamID string
	Grade  decimal.Decimal
}

// StudentName возвращает имя студента или пустую строку.
func (e *Exam) StudentName() string {
	if e.Student == nil {
		return ""
	}
	return e.Student.FullName()
}

// AverageGrade возвращает среднюю оценку или nil, если оценок нет.
func (e *Exam) AverageGrade() *decimal.Decimal {
	if len(e.ExamResults) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, r := range e.ExamResults {
		sum = sum.Add(r.Grade)
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(e.ExamResults)))).Round(2)
	return &avg
}

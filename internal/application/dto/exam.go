package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAM DTOs
// ══════════════════════════════════════════════════════════════════════════════

// ExamDTO is an exam as returned by list and get-by-id.
type ExamDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	StudentID   *string   `json:"student_id"`
	CreatedDate time.Time `json:"created_date"`
}

// ExamDetailDTO is an exam joined with its student's name and the average
// of its grades. Grade is null when no grade was recorded.
type ExamDetailDTO struct {
	ID          string           `json:"id"`
	ExamName    string           `json:"exam_name"`
	ExamDate    time.Time        `json:"exam_date"`
	StudentID   *string          `json:"student_id"`
	StudentName string           `json:"student_name"`
	Grade       *decimal.Decimal `json:"grade"`
	GradeCount  int              `json:"grade_count"`
}

// CreateExamDTO carries the fields of a new exam.
type CreateExamDTO struct {
	Name      string    `json:"name" validate:"max=100"`
	Date      time.Time `json:"date"`
	StudentID *string   `json:"student_id" validate:"omitempty,uuid"`
}

// UpdateExamDTO overwrites every mutable field of an exam.
type UpdateExamDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"max=100"`
	Date      time.Time `json:"date"`
	StudentID *string   `json:"student_id" validate:"omitempty,uuid"`
}

// DeleteExamDTO identifies an exam to remove.
type DeleteExamDTO struct {
	ID string `json:"id"`
}

// CreateExamResultDTO records one grade for an exam.
type CreateExamResultDTO struct {
	ExamID string          `json:"exam_id"`
	Grade  decimal.Decimal `json:"grade"`
}

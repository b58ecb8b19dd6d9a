package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRATION DTOs
// ══════════════════════════════════════════════════════════════════════════════

// RegistrationDTO is a registration as returned by list and get-by-id.
type RegistrationDTO struct {
	ID               string          `json:"id"`
	StudentID        string          `json:"student_id"`
	CourseID         string          `json:"course_id"`
	RegistrationDate time.Time       `json:"registration_date"`
	Price            decimal.Decimal `json:"price"`
	CreatedDate      time.Time       `json:"created_date"`
}

// RegistrationDetailDTO is a registration joined with course and student names.
type RegistrationDetailDTO struct {
	ID               string          `json:"id"`
	RegistrationDate time.Time       `json:"registration_date"`
	Price            decimal.Decimal `json:"price"`
	CourseID         string          `json:"course_id"`
	CourseName       string          `json:"course_name"`
	StudentID        string          `json:"student_id"`
	StudentName      string          `json:"student_name"`
}

// CreateRegistrationDTO carries the fields of a new registration.
type CreateRegistrationDTO struct {
	StudentID        string          `json:"student_id" validate:"omitempty,uuid"`
	CourseID         string          `json:"course_id" validate:"omitempty,uuid"`
	RegistrationDate time.Time       `json:"registration_date"`
	Price            decimal.Decimal `json:"price"`
}

// UpdateRegistrationDTO overwrites every mutable field of a registration.
type UpdateRegistrationDTO struct {
	ID               string          `json:"id"`
	StudentID        string          `json:"student_id" validate:"omitempty,uuid"`
	CourseID         string          `json:"course_id" validate:"omitempty,uuid"`
	RegistrationDate time.Time       `json:"registration_date"`
	Price            decimal.Decimal `json:"price"`
}

// DeleteRegistrationDTO identifies a registration to remove.
type DeleteRegistrationDTO struct {
	ID string `json:"id"`
}

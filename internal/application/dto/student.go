package dto

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT DTOs
// ══════════════════════════════════════════════════════════════════════════════

// StudentDTO is a student as returned by list and get-by-id.
type StudentDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	BirthDate   time.Time `json:"birth_date"`
	TC          string    `json:"tc"`
	CreatedDate time.Time `json:"created_date"`
}

// CreateStudentDTO carries the fields of a new student.
type CreateStudentDTO struct {
	Name      string    `json:"name" validate:"max=100"`
	Surname   string    `json:"surname" validate:"max=100"`
	BirthDate time.Time `json:"birth_date"`
	TC        string    `json:"tc" validate:"omitempty,numeric,max=20"`
}

// UpdateStudentDTO overwrites every mutable field of a student.
type UpdateStudentDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"max=100"`
	Surname   string    `json:"surname" validate:"max=100"`
	BirthDate time.Time `json:"birth_date"`
	TC        string    `json:"tc" validate:"omitempty,numeric,max=20"`
}

// DeleteStudentDTO identifies a student to remove.
type DeleteStudentDTO struct {
	ID string `json:"id"`
}

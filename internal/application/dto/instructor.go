package dto

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// INSTRUCTOR DTOs
// ══════════════════════════════════════════════════════════════════════════════

// InstructorDTO is an instructor as returned by list and get-by-id.
type InstructorDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Email       string    `json:"email"`
	Professions string    `json:"professions"`
	PhoneNumber string    `json:"phone_number"`
	CreatedDate time.Time `json:"created_date"`
}

// CreateInstructorDTO carries the fields of a new instructor.
type CreateInstructorDTO struct {
	Name        string `json:"name" validate:"max=100"`
	Surname     string `json:"surname" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Professions string `json:"professions" validate:"max=200"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
}

// UpdateInstructorDTO overwrites every mutable field of an instructor.
type UpdateInstructorDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name" validate:"max=100"`
	Surname     string `json:"surname" validate:"max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Professions string `json:"professions" validate:"max=200"`
	PhoneNumber string `json:"phone_number" validate:"max=30"`
}

// DeleteInstructorDTO identifies an instructor to remove.
type DeleteInstructorDTO struct {
	ID string `json:"id"`
}

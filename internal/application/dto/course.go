package dto

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// COURSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// CourseDTO is a course as returned by list and get-by-id.
type CourseDTO struct {
	ID           string    `json:"id"`
	CourseName   string    `json:"course_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	InstructorID *string   `json:"instructor_id"`
	CreatedDate  time.Time `json:"created_date"`
}

// CourseDetailDTO is a course joined with its instructor's name.
type CourseDetailDTO struct {
	ID             string    `json:"id"`
	CourseName     string    `json:"course_name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsActive       bool      `json:"is_active"`
	InstructorID   *string   `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	CreatedDate    time.Time `json:"created_date"`
}

// CreateCourseDTO carries the fields of a new course.
type CreateCourseDTO struct {
	CourseName   string    `json:"course_name" validate:"max=100"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	InstructorID *string   `json:"instructor_id" validate:"omitempty,uuid"`
}

// UpdateCourseDTO overwrites every mutable field of a course.
type UpdateCourseDTO struct {
	ID           string    `json:"id"`
	CourseName   string    `json:"course_name" validate:"max=100"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
	InstructorID *string   `json:"instructor_id" validate:"omitempty,uuid"`
}

// DeleteCourseDTO identifies a course to remove.
type DeleteCourseDTO struct {
	ID string `json:"id"`
}

// ValidateCourseDTO is a course draft checked without being stored. Dates
// stay raw strings so their format can be reported. ID excludes the course
// itself from the name uniqueness check.
type ValidateCourseDTO struct {
	ID           string  `json:"id"`
	CourseName   string  `json:"course_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	InstructorID *string `json:"instructor_id" validate:"omitempty,uuid"`
}

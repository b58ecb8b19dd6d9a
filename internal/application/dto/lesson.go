package dto

import "time"

// ══════════════════════════════════════════════════════════════════════════════
// LESSON DTOs
// ══════════════════════════════════════════════════════════════════════════════

// LessonDTO is a lesson as returned by list and get-by-id.
type LessonDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Duration    int       `json:"duration"`
	Content     string    `json:"content"`
	Time        string    `json:"time"`
	CourseID    *string   `json:"course_id"`
	CreatedDate time.Time `json:"created_date"`
}

// LessonDetailDTO is a lesson joined with its course's name.
type LessonDetailDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Duration    int       `json:"duration"`
	Content     string    `json:"content"`
	Time        string    `json:"time"`
	CourseID    *string   `json:"course_id"`
	CourseName  string    `json:"course_name"`
	CreatedDate time.Time `json:"created_date"`
}

// CreateLessonDTO carries the fields of a new lesson.
type CreateLessonDTO struct {
	Name     string    `json:"name" validate:"max=100"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration" validate:"gte=0"`
	Content  string    `json:"content"`
	Time     string    `json:"time" validate:"max=50"`
	CourseID *string   `json:"course_id" validate:"omitempty,uuid"`
}

// UpdateLessonDTO overwrites every mutable field of a lesson.
type UpdateLessonDTO struct {
	ID       string    `json:"id"`
	Name     string    `json:"name" validate:"max=100"`
	Date     time.Time `json:"date"`
	Duration int       `json:"duration" validate:"gte=0"`
	Content  string    `json:"content"`
	Time     string    `json:"time" validate:"max=50"`
	CourseID *string   `json:"course_id" validate:"omitempty,uuid"`
}

// DeleteLessonDTO identifies a lesson to remove.
type DeleteLessonDTO struct {
	ID string `json:"id"`
}

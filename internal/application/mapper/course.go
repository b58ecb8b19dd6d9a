package mapper

import (
	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE MAPPING
// ══════════════════════════════════════════════════════════════════════════════

// CourseToDTO converts a course entity to its read model.
func CourseToDTO(c *education.Course) dto.CourseDTO {
	return dto.CourseDTO{
		ID:           c.ID,
		CourseName:   c.CourseName,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		IsActive:     c.IsActive,
		InstructorID: c.InstructorID,
		CreatedDate:  c.CreatedDate,
	}
}

// CourseToDetailDTO converts a course loaded with its instructor.
// InstructorName is empty when the instructor is absent.
func CourseToDetailDTO(c *education.Course) dto.CourseDetailDTO {
	return dto.CourseDetailDTO{
		ID:             c.ID,
		CourseName:     c.CourseName,
		StartDate:      c.StartDate,
		EndDate:        c.EndDate,
		IsActive:       c.IsActive,
		InstructorID:   c.InstructorID,
		InstructorName: c.InstructorName(),
		CreatedDate:    c.CreatedDate,
	}
}

// CourseFromCreate builds a new course entity. The ID is left blank for the
// repository to assign.
func CourseFromCreate(in *dto.CreateCourseDTO) *education.Course {
	return &education.Course{
		CourseName:   in.CourseName,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsActive:     in.IsActive,
		InstructorID: in.InstructorID,
	}
}

// CourseFromUpdate builds the full overwrite of an existing course.
func CourseFromUpdate(in *dto.UpdateCourseDTO) *education.Course {
	return &education.Course{
		BaseEntity:   education.BaseEntity{ID: in.ID},
		CourseName:   in.CourseName,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		IsActive:     in.IsActive,
		InstructorID: in.InstructorID,
	}
}

// CourseFromDelete builds an entity carrying only the ID.
func CourseFromDelete(in *dto.DeleteCourseDTO) *education.Course {
	return &education.Course{BaseEntity: education.BaseEntity{ID: in.ID}}
}

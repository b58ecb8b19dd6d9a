package mapper

import (
	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// LESSON MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func LessonToDTO(l *education.Lesson) dto.LessonDTO {
	return dto.LessonDTO{
		ID:          l.ID,
		Name:        l.Name,
		Date:        l.Date,
		Duration:    l.Duration,
		Content:     l.Content,
		Time:        l.Time,
		CourseID:    l.CourseID,
		CreatedDate: l.CreatedDate,
	}
}

// LessonToDetailDTO converts a lesson loaded with its course. CourseName is
// empty when the course is absent.
func LessonToDetailDTO(l *education.Lesson) dto.LessonDetailDTO {
	return dto.LessonDetailDTO{
		ID:          l.ID,
		Name:        l.Name,
		Date:        l.Date,
		Duration:    l.Duration,
		Content:     l.Content,
		Time:        l.Time,
		CourseID:    l.CourseID,
		CourseName:  l.CourseName(),
		CreatedDate: l.CreatedDate,
	}
}

func LessonFromCreate(in *dto.CreateLessonDTO) *education.Lesson {
	return &education.Lesson{
		Name:     in.Name,
		Date:     in.Date,
		Duration: in.Duration,
		Content:  in.Content,
		Time:     in.Time,
		CourseID: in.CourseID,
	}
}

func LessonFromUpdate(in *dto.UpdateLessonDTO) *education.Lesson {
	return &education.Lesson{
		BaseEntity: education.BaseEntity{ID: in.ID},
		Name:       in.Name,
		Date:       in.Date,
		Duration:   in.Duration,
		Content:    in.Content,
		Time:       in.Time,
		CourseID:   in.CourseID,
	}
}

func LessonFromDelete(in *dto.DeleteLessonDTO) *education.Lesson {
	return &education.Lesson{BaseEntity: education.BaseEntity{ID: in.ID}}
}

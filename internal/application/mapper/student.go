package mapper

import (
	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func StudentToDTO(s *education.Student) dto.StudentDTO {
	return dto.StudentDTO{
		ID:          s.ID,
		Name:        s.Name,
		Surname:     s.Surname,
		BirthDate:   s.BirthDate,
		TC:          s.TC,
		CreatedDate: s.CreatedDate,
	}
}

func StudentFromCreate(in *dto.CreateStudentDTO) *education.Student {
	return &education.Student{
		Name:      in.Name,
		Surname:   in.Surname,
		BirthDate: in.BirthDate,
		TC:        in.TC,
	}
}

func StudentFromUpdate(in *dto.UpdateStudentDTO) *education.Student {
	return &education.Student{
		BaseEntity: education.BaseEntity{ID: in.ID},
		Name:       in.Name,
		Surname:    in.Surname,
		BirthDate:  in.BirthDate,
		TC:         in.TC,
	}
}

func StudentFromDelete(in *dto.DeleteStudentDTO) *education.Student {
	return &education.Student{BaseEntity: education.BaseEntity{ID: in.ID}}
}

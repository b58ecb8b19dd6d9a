package mapper

import (
	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// INSTRUCTOR MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func InstructorToDTO(i *education.Instructor) dto.InstructorDTO {
	return dto.InstructorDTO{
		ID:          i.ID,
		Name:        i.Name,
		Surname:     i.Surname,
		Email:       i.Email,
		Professions: i.Professions,
		PhoneNumber: i.PhoneNumber,
		CreatedDate: i.CreatedDate,
	}
}

func InstructorFromCreate(in *dto.CreateInstructorDTO) *education.Instructor {
	return &education.Instructor{
		Name:        in.Name,
		Surname:     in.Surname,
		Email:       in.Email,
		Professions: in.Professions,
		PhoneNumber: in.PhoneNumber,
	}
}

func InstructorFromUpdate(in *dto.UpdateInstructorDTO) *education.Instructor {
	return &education.Instructor{
		BaseEntity:  education.BaseEntity{ID: in.ID},
		Name:        in.Name,
		Surname:     in.Surname,
		Email:       in.Email,
		Professions: in.Professions,
		PhoneNumber: in.PhoneNumber,
	}
}

func InstructorFromDelete(in *dto.DeleteInstructorDTO) *education.Instructor {
	return &education.Instructor{BaseEntity: education.BaseEntity{ID: in.ID}}
}

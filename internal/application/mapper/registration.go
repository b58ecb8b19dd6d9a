package mapper

import (
	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRATION MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func RegistrationToDTO(r *education.Registration) dto.RegistrationDTO {
	return dto.RegistrationDTO{
		ID:               r.ID,
		StudentID:        r.StudentID,
		CourseID:         r.CourseID,
		RegistrationDate: r.RegistrationDate,
		Price:            r.Price,
		CreatedDate:      r.CreatedDate,
	}
}

// RegistrationToDetailDTO converts a registration loaded with its course and
// student. Missing relations map to empty names.
func RegistrationToDetailDTO(r *education.Registration) dto.RegistrationDetailDTO {
	return dto.RegistrationDetailDTO{
		ID:               r.ID,
		RegistrationDate: r.RegistrationDate,
		Price:            r.Price,
		CourseID:         r.CourseID,
		CourseName:       r.CourseName(),
		StudentID:        r.StudentID,
		StudentName:      r.StudentName(),
	}
}

func RegistrationFromCreate(in *dto.CreateRegistrationDTO) *education.Registration {
	return &education.Registration{
		StudentID:        in.StudentID,
		CourseID:         in.CourseID,
		RegistrationDate: in.RegistrationDate,
		Price:            in.Price,
	}
}

func RegistrationFromUpdate(in *dto.UpdateRegistrationDTO) *education.Registration {
	return &education.Registration{
		BaseEntity:       education.BaseEntity{ID: in.ID},
		StudentID:        in.StudentID,
		CourseID:         in.CourseID,
		RegistrationDate: in.RegistrationDate,
		Price:            in.Price,
	}
}

func RegistrationFromDelete(in *dto.DeleteRegistrationDTO) *education.Registration {
	return &education.Registration{BaseEntity: education.BaseEntity{ID: in.ID}}
}

package mapper

import (
	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/domain/education"
)

// ══════════════════════════════════════════════════════════════════════════════
// EXAM MAPPING
// ══════════════════════════════════════════════════════════════════════════════

func ExamToDTO(e *education.Exam) dto.ExamDTO {
	return dto.ExamDTO{
		ID:          e.ID,
		Name:        e.Name,
		Date:        e.Date,
		StudentID:   e.StudentID,
		CreatedDate: e.CreatedDate,
	}
}

// ExamToDetailDTO converts an exam loaded with its student and results.
// Grade is the rounded average, nil when no result exists.
func ExamToDetailDTO(e *education.Exam) dto.ExamDetailDTO {
	return dto.ExamDetailDTO{
		ID:          e.ID,
		ExamName:    e.Name,
		ExamDate:    e.Date,
		StudentID:   e.StudentID,
		StudentName: e.StudentName(),
		Grade:       e.AverageGrade(),
		GradeCount:  len(e.ExamResults),
	}
}

func ExamFromCreate(in *dto.CreateExamDTO) *education.Exam {
	return &education.Exam{
		Name:      in.Name,
		Date:      in.Date,
		StudentID: in.StudentID,
	}
}

func ExamFromUpdate(in *dto.UpdateExamDTO) *education.Exam {
	return &education.Exam{
		BaseEntity: education.BaseEntity{ID: in.ID},
		Name:       in.Name,
		Date:       in.Date,
		StudentID:  in.StudentID,
	}
}

func ExamFromDelete(in *dto.DeleteExamDTO) *education.Exam {
	return &education.Exam{BaseEntity: education.BaseEntity{ID: in.ID}}
}

func ExamResultFromCreate(in *dto.CreateExamResultDTO) *education.ExamResult {
	return &education.ExamResult{
		ExamID: in.ExamID,
		Grade:  in.Grade,
	}
}

package service

import (
	"context"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
)

// ExamManager реализует сценарии работы с экзаменами и оценками.
type ExamManager struct {
	manager
}

func NewExamManager(factory education.UnitOfWorkFactory, log *logger.Logger) *ExamManager {
	return &ExamManager{manager: newManager(factory, log, "exam")}
}

func (m *ExamManager) GetAll(ctx context.Context, track bool) (result.DataResult[[]dto.ExamDTO], error) {
	return list(ctx, m.manager, "GetAll",
		func(uow education.UnitOfWork) education.Query[education.Exam] {
			return uow.Exams().GetAll(track)
		},
		mapper.ExamToDTO, MsgExamListSuccess, MsgExamListEmpty)
}

// GetAllExamDetail возвращает экзамены с именем студента и средней оценкой.
func (m *ExamManager) GetAllExamDetail(ctx context.Context, track bool) (result.DataResult[[]dto.ExamDetailDTO], error) {
	return list(ctx, m.manager, "GetAllExamDetail",
		func(uow education.UnitOfWork) education.Query[education.Exam] {
			return uow.Exams().GetAllExamDetail(track)
		},
		mapper.ExamToDetailDTO, MsgExamDetailSuccess, MsgExamDetailEmpty)
}

func (m *ExamManager) GetByID(ctx context.Context, id string, track bool) (result.DataResult[*dto.ExamDTO], error) {
	res, err := find(ctx, m.manager, "GetByID", id,
		func(uow education.UnitOfWork) (*education.Exam, error) {
			return uow.Exams().GetByID(ctx, id, track)
		},
		mapper.ExamToDTO, MsgExamGetSuccess, MsgExamNotFound)
	if res.Success {
		res.Data.Name = mapper.DisplayName(res.Data.Name)
	}
	return res, err
}

func (m *ExamManager) Create(ctx context.Context, in *dto.CreateExamDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}

	exam := mapper.ExamFromCreate(in)
	return m.write(ctx, "Create", func(uow education.UnitOfWork) error {
		return uow.Exams().Create(exam)
	}, MsgExamCreateSuccess, MsgExamCreateFailed)
}

func (m *ExamManager) Update(ctx context.Context, in *dto.UpdateExamDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	exam := mapper.ExamFromUpdate(in)
	return m.write(ctx, "Update", func(uow education.UnitOfWork) error {
		return uow.Exams().Update(exam)
	}, MsgExamUpdateSuccess, MsgExamUpdateFailed)
}

func (m *ExamManager) Remove(ctx context.Context, in *dto.DeleteExamDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	exam := mapper.ExamFromDelete(in)
	return m.write(ctx, "Remove", func(uow education.UnitOfWork) error {
		return uow.Exams().Remove(exam)
	}, MsgExamDeleteSuccess, MsgExamDeleteFailed)
}

// AddResult записывает оценку за экзамен. Отрицательная оценка отклоняется
// до обращения к хранилищу.
func (m *ExamManager) AddResult(ctx context.Context, in *dto.CreateExamResultDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ExamID) {
		return result.Fail(MsgInvalidID), nil
	}
	if in.Grade.IsNegative() {
		return result.Fail(MsgInvalidGrade), nil
	}
	if !education.FitsMoneyScale(in.Grade) {
		return result.Fail(MsgGradeScale), nil
	}

	res := mapper.ExamResultFromCreate(in)
	return m.write(ctx, "AddResult", func(uow education.UnitOfWork) error {
		return uow.Exams().AddResult(res)
	}, MsgExamResultSuccess, MsgExamResultFailed)
}

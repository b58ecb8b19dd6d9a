package service

import (
	"context"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
)

// StudentManager реализует сценарии работы со студентами.
type StudentManager struct {
	manager
}

func NewStudentManager(factory education.UnitOfWorkFactory, log *logger.Logger) *StudentManager {
	return &StudentManager{manager: newManager(factory, log, "student")}
}

func (m *StudentManager) GetAll(ctx context.Context, track bool) (result.DataResult[[]dto.StudentDTO], error) {
	return list(ctx, m.manager, "GetAll",
		func(uow education.UnitOfWork) education.Query[education.Student] {
			return uow.Students().GetAll(track)
		},
		mapper.StudentToDTO, MsgStudentListSuccess, MsgStudentListEmpty)
}

func (m *StudentManager) GetByID(ctx context.Context, id string, track bool) (result.DataResult[*dto.StudentDTO], error) {
	res, err := find(ctx, m.manager, "GetByID", id,
		func(uow education.UnitOfWork) (*education.Student, error) {
			return uow.Students().GetByID(ctx, id, track)
		},
		mapper.StudentToDTO, MsgStudentGetSuccess, MsgStudentNotFound)
	if res.Success {
		res.Data.Name = mapper.DisplayName(res.Data.Name)
	}
	return res, err
}

func (m *StudentManager) Create(ctx context.Context, in *dto.CreateStudentDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}

	student := mapper.StudentFromCreate(in)
	return m.write(ctx, "Create", func(uow education.UnitOfWork) error {
		return uow.Students().Create(student)
	}, MsgStudentCreateSuccess, MsgStudentCreateFailed)
}

func (m *StudentManager) Update(ctx context.Context, in *dto.UpdateStudentDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	student := mapper.StudentFromUpdate(in)
	return m.write(ctx, "Update", func(uow education.UnitOfWork) error {
		return uow.Students().Update(student)
	}, MsgStudentUpdateSuccess, MsgStudentUpdateFailed)
}

func (m *StudentManager) Remove(ctx context.Context, in *dto.DeleteStudentDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	student := mapper.StudentFromDelete(in)
	return m.write(ctx, "Remove", func(uow education.UnitOfWork) error {
		return uow.Students().Remove(student)
	}, MsgStudentDeleteSuccess, MsgStudentDeleteFailed)
}

package service

import (
	"context"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
)

// InstructorManager реализует сценарии работы с преподавателями.
type InstructorManager struct {
	manager
}

func NewInstructorManager(factory education.UnitOfWorkFactory, log *logger.Logger) *InstructorManager {
	return &InstructorManager{manager: newManager(factory, log, "instructor")}
}

func (m *InstructorManager) GetAll(ctx context.Context, track bool) (result.DataResult[[]dto.InstructorDTO], error) {
	return list(ctx, m.manager, "GetAll",
		func(uow education.UnitOfWork) education.Query[education.Instructor] {
			return uow.Instructors().GetAll(track)
		},
		mapper.InstructorToDTO, MsgInstructorListSuccess, MsgInstructorListEmpty)
}

func (m *InstructorManager) GetByID(ctx context.Context, id string, track bool) (result.DataResult[*dto.InstructorDTO], error) {
	res, err := find(ctx, m.manager, "GetByID", id,
		func(uow education.UnitOfWork) (*education.Instructor, error) {
			return uow.Instructors().GetByID(ctx, id, track)
		},
		mapper.InstructorToDTO, MsgInstructorGetSuccess, MsgInstructorNotFound)
	if res.Success {
		res.Data.Name = mapper.DisplayName(res.Data.Name)
	}
	return res, err
}

func (m *InstructorManager) Create(ctx context.Context, in *dto.CreateInstructorDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}

	instructor := mapper.InstructorFromCreate(in)
	return m.write(ctx, "Create", func(uow education.UnitOfWork) error {
		return uow.Instructors().Create(instructor)
	}, MsgInstructorCreateSuccess, MsgInstructorCreateFailed)
}

func (m *InstructorManager) Update(ctx context.Context, in *dto.UpdateInstructorDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	instructor := mapper.InstructorFromUpdate(in)
	return m.write(ctx, "Update", func(uow education.UnitOfWork) error {
		return uow.Instructors().Update(instructor)
	}, MsgInstructorUpdateSuccess, MsgInstructorUpdateFailed)
}

func (m *InstructorManager) Remove(ctx context.Context, in *dto.DeleteInstructorDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	instructor := mapper.InstructorFromDelete(in)
	return m.write(ctx, "Remove", func(uow education.UnitOfWork) error {
		return uow.Instructors().Remove(instructor)
	}, MsgInstructorDeleteSuccess, MsgInstructorDeleteFailed)
}

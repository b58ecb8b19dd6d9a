package service

import (
	"context"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// COURSE MANAGER
// ══════════════════════════════════════════════════════════════════════════════

// CourseManager реализует сценарии работы с курсами.
type CourseManager struct {
	manager
}

// NewCourseManager создаёт менеджер курсов.
func NewCourseManager(factory education.UnitOfWorkFactory, log *logger.Logger) *CourseManager {
	return &CourseManager{manager: newManager(factory, log, "course")}
}

// GetAll возвращает все курсы.
func (m *CourseManager) GetAll(ctx context.Context, track bool) (result.DataResult[[]dto.CourseDTO], error) {
	return list(ctx, m.manager, "GetAll",
		func(uow education.UnitOfWork) education.Query[education.Course] {
			return uow.Courses().GetAll(track)
		},
		mapper.CourseToDTO, MsgCourseListSuccess, MsgCourseListEmpty)
}

// GetAllCourseDetail возвращает курсы с именем преподавателя, одним запросом.
func (m *CourseManager) GetAllCourseDetail(ctx context.Context, track bool) (result.DataResult[[]dto.CourseDetailDTO], error) {
	return list(ctx, m.manager, "GetAllCourseDetail",
		func(uow education.UnitOfWork) education.Query[education.Course] {
			return uow.Courses().GetAllCourseDetail(track)
		},
		mapper.CourseToDetailDTO, MsgCourseDetailSuccess, MsgCourseDetailEmpty)
}

// GetByID возвращает курс по ID.
func (m *CourseManager) GetByID(ctx context.Context, id string, track bool) (result.DataResult[*dto.CourseDTO], error) {
	res, err := find(ctx, m.manager, "GetByID", id,
		func(uow education.UnitOfWork) (*education.Course, error) {
			return uow.Courses().GetByID(ctx, id, track)
		},
		mapper.CourseToDTO, MsgCourseGetSuccess, MsgCourseNotFound)
	if res.Success {
		res.Data.CourseName = mapper.DisplayName(res.Data.CourseName)
	}
	return res, err
}

// Create добавляет курс.
func (m *CourseManager) Create(ctx context.Context, in *dto.CreateCourseDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}

	course := mapper.CourseFromCreate(in)
	return m.write(ctx, "Create", func(uow education.UnitOfWork) error {
		return uow.Courses().Create(course)
	}, MsgCourseCreateSuccess, MsgCourseCreateFailed)
}

// Update полностью перезаписывает курс.
func (m *CourseManager) Update(ctx context.Context, in *dto.UpdateCourseDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	course := mapper.CourseFromUpdate(in)
	return m.write(ctx, "Update", func(uow education.UnitOfWork) error {
		return uow.Courses().Update(course)
	}, MsgCourseUpdateSuccess, MsgCourseUpdateFailed)
}

// Remove удаляет курс по ID.
func (m *CourseManager) Remove(ctx context.Context, in *dto.DeleteCourseDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	course := mapper.CourseFromDelete(in)
	return m.write(ctx, "Remove", func(uow education.UnitOfWork) error {
		return uow.Courses().Remove(course)
	}, MsgCourseDeleteSuccess, MsgCourseDeleteFailed)
}

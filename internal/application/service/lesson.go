package service

import (
	"context"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
)

// LessonManager реализует сценарии работы с занятиями.
type LessonManager struct {
	manager
}

func NewLessonManager(factory education.UnitOfWorkFactory, log *logger.Logger) *LessonManager {
	return &LessonManager{manager: newManager(factory, log, "lesson")}
}

func (m *LessonManager) GetAll(ctx context.Context, track bool) (result.DataResult[[]dto.LessonDTO], error) {
	return list(ctx, m.manager, "GetAll",
		func(uow education.UnitOfWork) education.Query[education.Lesson] {
			return uow.Lessons().GetAll(track)
		},
		mapper.LessonToDTO, MsgLessonListSuccess, MsgLessonListEmpty)
}

// GetAllLessonDetail возвращает занятия с названием курса.
func (m *LessonManager) GetAllLessonDetail(ctx context.Context, track bool) (result.DataResult[[]dto.LessonDetailDTO], error) {
	return list(ctx, m.manager, "GetAllLessonDetail",
		func(uow education.UnitOfWork) education.Query[education.Lesson] {
			return uow.Lessons().GetAllLessonDetails(track)
		},
		mapper.LessonToDetailDTO, MsgLessonDetailSuccess, MsgLessonDetailEmpty)
}

func (m *LessonManager) GetByID(ctx context.Context, id string, track bool) (result.DataResult[*dto.LessonDTO], error) {
	res, err := find(ctx, m.manager, "GetByID", id,
		func(uow education.UnitOfWork) (*education.Lesson, error) {
			return uow.Lessons().GetByID(ctx, id, track)
		},
		mapper.LessonToDTO, MsgLessonGetSuccess, MsgLessonNotFound)
	if res.Success {
		res.Data.Name = mapper.DisplayName(res.Data.Name)
	}
	return res, err
}

// GetByIDLessonDetail возвращает занятие с названием курса.
func (m *LessonManager) GetByIDLessonDetail(ctx context.Context, id string, track bool) (result.DataResult[*dto.LessonDetailDTO], error) {
	res, err := find(ctx, m.manager, "GetByIDLessonDetail", id,
		func(uow education.UnitOfWork) (*education.Lesson, error) {
			return uow.Lessons().GetByIDLessonDetails(ctx, id, track)
		},
		mapper.LessonToDetailDTO, MsgLessonGetSuccess, MsgLessonNotFound)
	if res.Success {
		res.Data.Name = mapper.DisplayName(res.Data.Name)
	}
	return res, err
}

func (m *LessonManager) Create(ctx context.Context, in *dto.CreateLessonDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}

	lesson := mapper.LessonFromCreate(in)
	return m.write(ctx, "Create", func(uow education.UnitOfWork) error {
		return uow.Lessons().Create(lesson)
	}, MsgLessonCreateSuccess, MsgLessonCreateFailed)
}

func (m *LessonManager) Update(ctx context.Context, in *dto.UpdateLessonDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	lesson := mapper.LessonFromUpdate(in)
	return m.write(ctx, "Update", func(uow education.UnitOfWork) error {
		return uow.Lessons().Update(lesson)
	}, MsgLessonUpdateSuccess, MsgLessonUpdateFailed)
}

func (m *LessonManager) Remove(ctx context.Context, in *dto.DeleteLessonDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	lesson := mapper.LessonFromDelete(in)
	return m.write(ctx, "Remove", func(uow education.UnitOfWork) error {
		return uow.Lessons().Remove(lesson)
	}, MsgLessonDeleteSuccess, MsgLessonDeleteFailed)
}

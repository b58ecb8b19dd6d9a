package service

import (
	"context"

	"github.com/course-hub/coursehub/internal/application/dto"
	"github.com/course-hub/coursehub/internal/application/mapper"
	"github.com/course-hub/coursehub/internal/application/result"
	"github.com/course-hub/coursehub/internal/domain/education"
	"github.com/course-hub/coursehub/pkg/logger"
	"github.com/shopspring/decimal"
)

// RegistrationManager реализует сценарии записи студентов на курсы.
// Цена проверяется на положительность и при создании, и при обновлении.
type RegistrationManager struct {
	manager
}

func NewRegistrationManager(factory education.UnitOfWorkFactory, log *logger.Logger) *RegistrationManager {
	return &RegistrationManager{manager: newManager(factory, log, "registration")}
}

func (m *RegistrationManager) GetAll(ctx context.Context, track bool) (result.DataResult[[]dto.RegistrationDTO], error) {
	return list(ctx, m.manager, "GetAll",
		func(uow education.UnitOfWork) education.Query[education.Registration] {
			return uow.Registrations().GetAll(track)
		},
		mapper.RegistrationToDTO, MsgRegistrationListSuccess, MsgRegistrationListEmpty)
}

// GetAllRegistrationDetail возвращает записи с названием курса и именем
// студента, одним запросом.
func (m *RegistrationManager) GetAllRegistrationDetail(ctx context.Context, track bool) (result.DataResult[[]dto.RegistrationDetailDTO], error) {
	return list(ctx, m.manager, "GetAllRegistrationDetail",
		func(uow education.UnitOfWork) education.Query[education.Registration] {
			return uow.Registrations().GetAllRegistrationDetail(track)
		},
		mapper.RegistrationToDetailDTO, MsgRegistrationDetailSuccess, MsgRegistrationDetailEmpty)
}

func (m *RegistrationManager) GetByID(ctx context.Context, id string, track bool) (result.DataResult[*dto.RegistrationDTO], error) {
	return find(ctx, m.manager, "GetByID", id,
		func(uow education.UnitOfWork) (*education.Registration, error) {
			return uow.Registrations().GetByID(ctx, id, track)
		},
		mapper.RegistrationToDTO, MsgRegistrationGetSuccess, MsgRegistrationNotFound)
}

func (m *RegistrationManager) GetByIDRegistrationDetail(ctx context.Context, id string, track bool) (result.DataResult[*dto.RegistrationDetailDTO], error) {
	res, err := find(ctx, m.manager, "GetByIDRegistrationDetail", id,
		func(uow education.UnitOfWork) (*education.Registration, error) {
			return uow.Registrations().GetByIDRegistrationDetail(ctx, id, track)
		},
		mapper.RegistrationToDetailDTO, MsgRegistrationGetSuccess, MsgRegistrationNotFound)
	if res.Success {
		res.Data.CourseName = mapper.DisplayName(res.Data.CourseName)
		res.Data.StudentName = mapper.DisplayName(res.Data.StudentName)
	}
	return res, err
}

func (m *RegistrationManager) Create(ctx context.Context, in *dto.CreateRegistrationDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if r := checkPrice(in.Price); !r.Success {
		return r, nil
	}

	registration := mapper.RegistrationFromCreate(in)
	return m.write(ctx, "Create", func(uow education.UnitOfWork) error {
		return uow.Registrations().Create(registration)
	}, MsgRegistrationCreateSuccess, MsgRegistrationCreateFailed)
}

func (m *RegistrationManager) Update(ctx context.Context, in *dto.UpdateRegistrationDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}
	if r := checkPrice(in.Price); !r.Success {
		return r, nil
	}

	registration := mapper.RegistrationFromUpdate(in)
	return m.write(ctx, "Update", func(uow education.UnitOfWork) error {
		return uow.Registrations().Update(registration)
	}, MsgRegistrationUpdateSuccess, MsgRegistrationUpdateFailed)
}

func (m *RegistrationManager) Remove(ctx context.Context, in *dto.DeleteRegistrationDTO) (result.Result, error) {
	if in == nil {
		return result.Fail(MsgNilInput), nil
	}
	if blank(in.ID) {
		return result.Fail(MsgInvalidID), nil
	}

	registration := mapper.RegistrationFromDelete(in)
	return m.write(ctx, "Remove", func(uow education.UnitOfWork) error {
		return uow.Registrations().Remove(registration)
	}, MsgRegistrationDeleteSuccess, MsgRegistrationDeleteFailed)
}

func checkPrice(price decimal.Decimal) result.Result {
	if !price.IsPositive() {
		return result.Fail(MsgInvalidPrice)
	}
	if !education.FitsMoneyScale(price) {
		return result.Fail(MsgPriceScale)
	}
	return result.Ok("")
}

package commands

import (
	"context"
	"errors"

	"wheelshare/internal/domain/car"
	"wheelshare/internal/domain/user"
	"wheelshare/internal/infra"
	"wheelshare/internal/pkg/errs"
	"wheelshare/internal/usecase/queries"
	"wheelshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateCarInput struct {
	Brand          string
	Model          string
	DailyRateCents int64
}

type CarCommands interface {
	// CreateCar lists a new vehicle owned by the actor.
	CreateCar(ctx context.Context, actor shared.Principal, in CreateCarInput) (*queries.CarView, error)
	// DelistCar withdraws a vehicle from new bookings. Existing bookings are
	// untouched; the owner cancels them separately if needed.
	DelistCar(ctx context.Context, actor shared.Principal, id uuid.UUID) error
}

type carCommandsImpl struct {
	uow        shared.UnitOfWork
	carQueries queries.CarQueries
}

func NewCarCommands(uow shared.UnitOfWork, carQueries queries.CarQueries) CarCommands {
	return &carCommandsImpl{
		uow:        uow,
		carQueries: carQueries,
	}
}

func (c *carCommandsImpl) CreateCar(ctx context.Context, actor shared.Principal, in CreateCarInput) (*queries.CarView, error) {
	if actor.Role == user.RoleRenter {
		return nil, ErrForbiddenActor
	}

	carEntity, err := car.NewCar(actor.ID, in.Brand, in.Model, in.DailyRateCents)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Cars().Create(ctx, carEntity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.carQueries.GetByID(ctx, carEntity.ID())
}

func (c *carCommandsImpl) DelistCar(ctx context.Context, actor shared.Principal, id uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		carEntity, err := tx.Cars().FindByIDForUpdate(ctx, id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrCarNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !actor.IsAdmin() {
			if err := carEntity.Delist(actor.ID); err != nil {
				return markDelistErr(err)
			}
		}

		if err := tx.Cars().SetListed(ctx, id, false); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func markDelistErr(err error) error {
	if errors.Is(err, car.ErrNotOwner) {
		return errs.Mark(err, ErrForbiddenActor)
	}
	return errs.Mark(err, ErrTransitionRejected)
}

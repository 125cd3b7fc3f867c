package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// CreateCourierCommandHandler registers a new courier. The courier starts
// active and available for work. Duplicate ids are rejected.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      Clock
	notifier   Notifier
}

func NewCreateCourierCommandHandler(
	uowFactory CourierUoWFactory, clock Clock, notifier Notifier,
) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h CreateCourierCommandHandler) Handle(ctx context.Context, cmd CreateCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()

	_, err := courierRepo.Get(ctx, cmd.CourierID())
	if err == nil {
		return errs.NewObjectAlreadyExistsError("courierID", cmd.CourierID())
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	aggregate, err := courier.NewCourier(
		cmd.CourierID(),
		cmd.Name(),
		cmd.Phone(),
		cmd.Email(),
		cmd.Vehicle(),
		cmd.Location(),
		h.clock.Now(),
	)
	if err != nil {
		return err
	}

	if cmd.MaxDistanceKm() != nil {
		if err = aggregate.SetMaxDistanceKm(cmd.MaxDistanceKm()); err != nil {
			return err
		}
	}

	if err = courierRepo.Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyCourierChanged(aggregate.ID())
	return nil
}

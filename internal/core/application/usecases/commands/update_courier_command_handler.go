package commands

import (
	"context"
	"errors"
)

// UpdateCourierCommandHandler applies profile edits to an existing courier.
type UpdateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	notifier   Notifier
}

func NewUpdateCourierCommandHandler(
	uowFactory CourierUoWFactory, notifier Notifier,
) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) error {
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

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = errors.Join(
		aggregate.UpdateContact(cmd.Name(), cmd.Phone(), cmd.Email()),
		aggregate.SetVehicle(cmd.Vehicle()),
		aggregate.SetLocation(cmd.Location()),
		aggregate.SetMaxDistanceKm(cmd.MaxDistanceKm()),
	); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyCourierChanged(aggregate.ID())
	return nil
}

package commands

import (
	"context"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// DeleteCourierCommandHandler removes an inactive courier. An active courier
// must be deactivated first; the explicit extra step prevents accidental
// removal of someone mid-shift.
type DeleteCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	notifier   Notifier
}

func NewDeleteCourierCommandHandler(
	uowFactory CourierUoWFactory, notifier Notifier,
) DeleteCourierCommandHandler {
	return DeleteCourierCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

func (h DeleteCourierCommandHandler) Handle(ctx context.Context, cmd DeleteCourierCommand) error {
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
	orderRepo := uow.OrderRepository()

	aggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if aggregate.IsActive() {
		return errs.NewConflictError(fmt.Sprintf(
			"courier %s is active, deactivate before deleting", aggregate.ID()))
	}

	unfinished, err := orderRepo.GetAllUnfinishedByCourier(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	if len(unfinished) > 0 {
		return errs.NewConflictError(fmt.Sprintf(
			"courier %s has %d unfinished orders", aggregate.ID(), len(unfinished)))
	}

	if err = courierRepo.Delete(ctx, aggregate.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyCourierChanged(aggregate.ID())
	return nil
}

package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// SetCourierStatusCommandHandler flips a courier between available and
// inactive. Deactivation is refused while the courier still has an
// unfinished order, so work in flight is never orphaned.
type SetCourierStatusCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      Clock
	notifier   Notifier
}

func NewSetCourierStatusCommandHandler(
	uowFactory CourierUoWFactory, clock Clock, notifier Notifier,
) SetCourierStatusCommandHandler {
	return SetCourierStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h SetCourierStatusCommandHandler) Handle(ctx context.Context, cmd SetCourierStatusCommand) error {
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

	switch cmd.Status() {
	case courier.Available:
		if aggregate.IsActive() {
			return uow.Commit(ctx)
		}
		if err = aggregate.Activate(h.clock.Now()); err != nil {
			return err
		}

	case courier.Inactive:
		if !aggregate.IsActive() {
			return uow.Commit(ctx)
		}
		unfinished, err := orderRepo.GetAllUnfinishedByCourier(ctx, aggregate.ID())
		if err != nil {
			return err
		}
		if len(unfinished) > 0 {
			return errs.NewConflictError(fmt.Sprintf(
				"courier %s has %d unfinished orders", aggregate.ID(), len(unfinished)))
		}
		aggregate.Deactivate()

	default:
		return errs.NewValueIsInvalidError("status")
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

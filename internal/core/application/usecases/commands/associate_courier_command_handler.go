package commands

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/geo"
	"dispatch/internal/pkg/errs"
)

// AssociateCourierCommandHandler assigns a courier to an order and opens the
// matching delivery attempt in the same transaction.
//
// Conflicts rejected here: the order already has a courier or is finished,
// the courier is inactive, or the courier still has an unfinished order.
// The delivery snapshots the courier's current vehicle and the straight-line
// distance to the drop-off, so later courier edits never rewrite history.
type AssociateCourierCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	notifier   Notifier
}

// NewAssociateCourierCommandHandler creates a handler for courier-to-order
// association.
func NewAssociateCourierCommandHandler(
	uowFactory UoWFactory, clock Clock, notifier Notifier,
) AssociateCourierCommandHandler {
	return AssociateCourierCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle performs the association. All checks precede any mutation; nothing
// partially commits.
func (h AssociateCourierCommandHandler) Handle(ctx context.Context, cmd AssociateCourierCommand) error {
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

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	courierAggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if !courierAggregate.IsActive() {
		return errs.NewConflictError(
			fmt.Sprintf("courier %s is inactive", courierAggregate.ID()))
	}

	unfinished, err := orderRepo.GetAllUnfinishedByCourier(ctx, courierAggregate.ID())
	if err != nil {
		return err
	}
	if len(unfinished) > 0 {
		return errs.NewConflictError(
			fmt.Sprintf("courier %s already has an unfinished order", courierAggregate.ID()))
	}

	now := h.clock.Now()
	if err = aggregate.Associate(courierAggregate.ID(), now); err != nil {
		return err
	}

	distanceKm, err := geo.DistanceKm(courierAggregate.Location(), aggregate.Location())
	if err != nil {
		return err
	}

	deliveryID, err := deliveryRepo.NextID(ctx)
	if err != nil {
		return err
	}

	attempt, err := delivery.NewDelivery(
		deliveryID,
		aggregate.ID(),
		courierAggregate.ID(),
		courierAggregate.Vehicle(),
		distanceKm,
		now,
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, attempt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderChanged(aggregate.ID())
	h.notifier.NotifyCourierChanged(courierAggregate.ID())
	h.notifier.NotifyDeliveryChanged(deliveryID)
	return nil
}

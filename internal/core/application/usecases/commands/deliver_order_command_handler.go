package commands

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// DeliverOrderCommandHandler marks an order delivered. The open delivery
// attempt closes as completed with the same timestamp, keeping the ledger and
// the order in lockstep.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	notifier   Notifier
}

func NewDeliverOrderCommandHandler(
	uowFactory UoWFactory, clock Clock, notifier Notifier,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	attempt, err := deliveryRepo.GetOpenByOrder(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	now := h.clock.Now()
	if err = aggregate.Deliver(now); err != nil {
		return err
	}
	if err = attempt.Close(delivery.Completed, now); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if err = deliveryRepo.Update(ctx, attempt); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderChanged(aggregate.ID())
	h.notifier.NotifyCourierChanged(attempt.CourierID())
	h.notifier.NotifyDeliveryChanged(attempt.ID())
	return nil
}

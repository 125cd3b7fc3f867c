package commands

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// RefuseOrderCommandHandler closes the open delivery attempt as refused by
// the customer. Perishable food cannot be redelivered, so a restaurant-food
// order closes permanently; any other order fully resets and reopens for
// another courier.
type RefuseOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	notifier   Notifier
}

func NewRefuseOrderCommandHandler(
	uowFactory UoWFactory, clock Clock, notifier Notifier,
) RefuseOrderCommandHandler {
	return RefuseOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h RefuseOrderCommandHandler) Handle(ctx context.Context, cmd RefuseOrderCommand) error {
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
	if err = attempt.Close(delivery.CustomerRefused, now); err != nil {
		return err
	}

	if aggregate.OrderType().IsPerishable() {
		err = aggregate.CloseRefused(now)
	} else {
		err = aggregate.Reset()
	}
	if err != nil {
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

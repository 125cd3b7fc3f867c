package commands

import "context"

// PickUpOrderCommandHandler stamps the pickup time on an assigned order.
// Requires an associated courier and no prior pickup; the order aggregate
// enforces both.
type PickUpOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	notifier   Notifier
}

func NewPickUpOrderCommandHandler(
	uowFactory OrderUoWFactory, clock Clock, notifier Notifier,
) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
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

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.PickUp(h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderChanged(aggregate.ID())
	return nil
}

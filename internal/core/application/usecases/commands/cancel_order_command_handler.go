package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an unfinished order. If an attempt is in
// flight it closes as cancelled; either way the courier and date fields clear
// and the order returns to the open pool. Finished orders cannot be
// cancelled.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      Clock
	notifier   Notifier
}

func NewCancelOrderCommandHandler(
	uowFactory UoWFactory, clock Clock, notifier Notifier,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	// An open order with no courier cancels to itself.
	attempt, err := deliveryRepo.GetOpenByOrder(ctx, aggregate.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	var closedCourierID string
	var closedDeliveryID int64
	if attempt != nil {
		if err = attempt.Close(delivery.Cancelled, h.clock.Now()); err != nil {
			return err
		}
		closedCourierID = attempt.CourierID()
		closedDeliveryID = attempt.ID()
	}

	if err = aggregate.Reset(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if attempt != nil {
		if err = deliveryRepo.Update(ctx, attempt); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.NotifyOrderChanged(aggregate.ID())
	if attempt != nil {
		h.notifier.NotifyCourierChanged(closedCourierID)
		h.notifier.NotifyDeliveryChanged(closedDeliveryID)
	}
	return nil
}

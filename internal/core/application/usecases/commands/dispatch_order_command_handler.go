package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/geo"
	"dispatch/internal/pkg/errs"
)

// DispatchOrderCommandHandler auto-assigns the best free courier to an
// order. Candidates are the active couriers without an unfinished order;
// the Dispatcher domain service ranks them by estimated travel time and
// applies each courier's distance cap. The winner is associated exactly as
// in AssociateCourierCommandHandler, opening a delivery attempt in the same
// transaction.
//
// When no courier qualifies the handler returns a conflict and the order
// stays open.
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.Dispatcher
	clock      Clock
	notifier   Notifier
}

// NewDispatchOrderCommandHandler creates a handler for automatic courier
// assignment.
func NewDispatchOrderCommandHandler(
	uowFactory UoWFactory, dispatcher services.Dispatcher, clock Clock, notifier Notifier,
) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle selects a courier and performs the association. Returns the id of
// the chosen courier.
func (h DispatchOrderCommandHandler) Handle(
	ctx context.Context, cmd DispatchOrderCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	courierRepo := uow.CourierRepository()
	deliveryRepo := uow.DeliveryRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return "", err
	}

	active, err := courierRepo.GetAllActive(ctx)
	if err != nil {
		return "", err
	}

	free := make([]*courier.Courier, 0, len(active))
	for _, c := range active {
		unfinished, err := orderRepo.GetAllUnfinishedByCourier(ctx, c.ID())
		if err != nil {
			return "", err
		}
		if len(unfinished) == 0 {
			free = append(free, c)
		}
	}

	chosen, err := h.dispatcher.SelectCourier(aggregate, free)
	if err != nil {
		if errors.Is(err, services.ErrCourierNotFound) {
			return "", errs.NewConflictError("no courier can take this order")
		}
		return "", err
	}

	now := h.clock.Now()
	if err = aggregate.Associate(chosen.ID(), now); err != nil {
		return "", err
	}

	distanceKm, err := geo.DistanceKm(chosen.Location(), aggregate.Location())
	if err != nil {
		return "", err
	}

	deliveryID, err := deliveryRepo.NextID(ctx)
	if err != nil {
		return "", err
	}

	attempt, err := delivery.NewDelivery(
		deliveryID,
		aggregate.ID(),
		chosen.ID(),
		chosen.Vehicle(),
		distanceKm,
		now,
	)
	if err != nil {
		return "", err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return "", err
	}

	if err = deliveryRepo.Add(ctx, attempt); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	h.notifier.NotifyOrderChanged(aggregate.ID())
	h.notifier.NotifyCourierChanged(chosen.ID())
	h.notifier.NotifyDeliveryChanged(deliveryID)
	return chosen.ID(), nil
}

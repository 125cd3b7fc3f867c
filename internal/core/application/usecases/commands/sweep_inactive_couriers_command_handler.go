package commands

import (
	"context"
	"time"
)

// InactivityParams supplies the sweep threshold.
type InactivityParams interface {
	InactivityRange() time.Duration
}

// SweepInactiveCouriersCommandHandler deactivates overworked couriers.
// A courier whose time on shift exceeds the inactivity range is deactivated
// only if they currently have zero unfinished orders; notifications fire only
// for couriers actually changed.
type SweepInactiveCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
	clock      Clock
	params     InactivityParams
	notifier   Notifier
}

func NewSweepInactiveCouriersCommandHandler(
	uowFactory CourierUoWFactory, clock Clock, params InactivityParams, notifier Notifier,
) SweepInactiveCouriersCommandHandler {
	return SweepInactiveCouriersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		params:     params,
		notifier:   notifier,
	}
}

// Handle runs one sweep and returns the ids of couriers it deactivated.
func (h SweepInactiveCouriersCommandHandler) Handle(
	ctx context.Context, cmd SweepInactiveCouriersCommand,
) ([]string, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	active, err := courierRepo.GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	threshold := h.params.InactivityRange()

	var swept []string
	for _, aggregate := range active {
		if now.Sub(aggregate.StartedWorkAt()) <= threshold {
			continue
		}

		unfinished, err := orderRepo.GetAllUnfinishedByCourier(ctx, aggregate.ID())
		if err != nil {
			return nil, err
		}
		if len(unfinished) > 0 {
			continue
		}

		aggregate.Deactivate()
		if err = courierRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
		swept = append(swept, aggregate.ID())
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	for _, id := range swept {
		h.notifier.NotifyCourierChanged(id)
	}
	return swept, nil
}

package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles order registration. Orders start open,
// timestamped with the virtual clock, and get their id from the repository.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock, notifier)
//	cmd, _ := NewCreateOrderCommand(order.Groceries, "456 Oak Avenue",
//	    location, "Bob", "+15550100", 4, 12)
//
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
	notifier   Notifier
}

// NewCreateOrderCommandHandler creates a handler for order registration.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory, clock Clock, notifier Notifier,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
	}
}

// Handle persists a new open order and returns its assigned id.
// The id is allocated by the repository inside the transaction so a rollback
// never leaks a visible order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	id, err := orderRepo.NextID(ctx)
	if err != nil {
		return 0, err
	}

	aggregate, err := order.NewOrder(
		id,
		cmd.OrderType(),
		cmd.Address(),
		cmd.Location(),
		cmd.CustomerName(),
		cmd.CustomerPhone(),
		cmd.WeightKg(),
		cmd.VolumeLiters(),
		h.clock.Now(),
	)
	if err != nil {
		return 0, err
	}

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	h.notifier.NotifyOrderChanged(id)
	return id, nil
}

package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand requests automatic courier selection for an order.
// Unlike AssociateCourierCommand the caller does not name a courier; the
// handler picks the free active courier with the shortest travel time.
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a command to auto-assign a courier to an
// order.
func NewDispatchOrderCommand(orderID int64) (DispatchOrderCommand, error) {
	if orderID <= 0 {
		return DispatchOrderCommand{}, errs.NewValueIsInvalidError("orderID")
	}

	return DispatchOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() int64 { return c.orderID }

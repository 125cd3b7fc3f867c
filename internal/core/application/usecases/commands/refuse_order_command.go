package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRefuseOrderCommandIsNotConstructed = errors.New(
	"RefuseOrderCommand must be created via NewRefuseOrderCommand constructor",
)

// RefuseOrderCommand records a customer refusing the order at the door.
type RefuseOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewRefuseOrderCommand(orderID int64) (RefuseOrderCommand, error) {
	if orderID <= 0 {
		return RefuseOrderCommand{}, errs.NewValueIsInvalidError("orderID")
	}

	return RefuseOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefuseOrderCommand) Validate() error {
	return c.guard.Validate(ErrRefuseOrderCommandIsNotConstructed)
}

func (c RefuseOrderCommand) OrderID() int64 { return c.orderID }

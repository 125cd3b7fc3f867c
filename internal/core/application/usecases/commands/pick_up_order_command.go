package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor",
)

// PickUpOrderCommand marks an assigned order as picked up by its courier.
type PickUpOrderCommand struct { //nolint:recvcheck //using for validation
	orderID int64

	guard guard.ConstructorGuard
}

func NewPickUpOrderCommand(orderID int64) (PickUpOrderCommand, error) {
	if orderID <= 0 {
		return PickUpOrderCommand{}, errs.NewValueIsInvalidError("orderID")
	}

	return PickUpOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

func (c PickUpOrderCommand) OrderID() int64 { return c.orderID }

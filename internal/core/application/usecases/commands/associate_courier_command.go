package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssociateCourierCommandIsNotConstructed = errors.New(
	"AssociateCourierCommand must be created via NewAssociateCourierCommand constructor",
)

// AssociateCourierCommand requests assignment of a specific courier to a
// specific order. On success the order moves to in-progress and a delivery
// attempt opens.
type AssociateCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   int64
	courierID string

	guard guard.ConstructorGuard
}

// NewAssociateCourierCommand creates a command to assign a courier to an
// order.
func NewAssociateCourierCommand(orderID int64, courierID string) (AssociateCourierCommand, error) {
	if orderID <= 0 {
		return AssociateCourierCommand{}, errs.NewValueIsInvalidError("orderID")
	}
	if courierID == "" {
		return AssociateCourierCommand{}, errs.NewValueIsRequiredError("courierID")
	}

	return AssociateCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssociateCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssociateCourierCommandIsNotConstructed)
}

func (c AssociateCourierCommand) OrderID() int64 { return c.orderID }
func (c AssociateCourierCommand) CourierID() string { return c.courierID }

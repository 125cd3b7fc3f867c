package commands

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteCourierCommandIsNotConstructed = errors.New(
	"DeleteCourierCommand must be created via NewDeleteCourierCommand constructor",
)

// DeleteCourierCommand removes a courier from the registry. Deletion is a
// two-phase gate: the courier must already be deactivated and must have no
// unfinished orders.
type DeleteCourierCommand struct { //nolint:recvcheck //using for validation
	courierID string

	guard guard.ConstructorGuard
}

func NewDeleteCourierCommand(courierID string) (DeleteCourierCommand, error) {
	if courierID == "" {
		return DeleteCourierCommand{}, errs.NewValueIsRequiredError("courierID")
	}

	return DeleteCourierCommand{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteCourierCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCourierCommandIsNotConstructed)
}

func (c DeleteCourierCommand) CourierID() string { return c.courierID }

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierStatusCommandIsNotConstructed = errors.New(
	"SetCourierStatusCommand must be created via NewSetCourierStatusCommand constructor",
)

// SetCourierStatusCommand activates or deactivates a courier. The on-route
// status is derived from open deliveries and can never be set directly; the
// constructor rejects it up front.
type SetCourierStatusCommand struct { //nolint:recvcheck //using for validation
	courierID string
	status    courier.Status

	guard guard.ConstructorGuard
}

func NewSetCourierStatusCommand(courierID string, status courier.Status) (SetCourierStatusCommand, error) {
	if courierID == "" {
		return SetCourierStatusCommand{}, errs.NewValueIsRequiredError("courierID")
	}
	if err := status.ValidateDirectlySettable(); err != nil {
		return SetCourierStatusCommand{}, err
	}

	return SetCourierStatusCommand{
		courierID: courierID,
		status:    status,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierStatusCommandIsNotConstructed)
}

func (c SetCourierStatusCommand) CourierID() string { return c.courierID }
func (c SetCourierStatusCommand) Status() courier.Status { return c.status }

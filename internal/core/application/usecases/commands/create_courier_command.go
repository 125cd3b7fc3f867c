package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand registers a new courier. Couriers carry their natural
// id (badge or account name) rather than a generated one.
//
// Example:
//
//	cmd, err := NewCreateCourierCommand("c-17", "Kim", "+4479...", "kim@x.io",
//	    kernel.VehicleBicycle, location, nil)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID     string
	name          string
	phone         string
	email         string
	vehicle       kernel.Vehicle
	location      kernel.Location
	maxDistanceKm *float64

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
func NewCreateCourierCommand(
	courierID string,
	name string,
	phone string,
	email string,
	vehicle kernel.Vehicle,
	location kernel.Location,
	maxDistanceKm *float64,
) (CreateCourierCommand, error) {
	if courierID == "" {
		return CreateCourierCommand{}, errs.NewValueIsRequiredError("courierID")
	}
	if err := errors.Join(vehicle.Validate(), location.Validate()); err != nil {
		return CreateCourierCommand{}, err
	}

	cmd := CreateCourierCommand{
		courierID: courierID,
		name:      name,
		phone:     phone,
		email:     email,
		vehicle:   vehicle,
		location:  location,

		guard: guard.NewConstructorGuard(),
	}
	if maxDistanceKm != nil {
		v := *maxDistanceKm
		cmd.maxDistanceKm = &v
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() string { return c.courierID }
func (c CreateCourierCommand) Name() string { return c.name }
func (c CreateCourierCommand) Phone() string { return c.phone }
func (c CreateCourierCommand) Email() string { return c.email }
func (c CreateCourierCommand) Vehicle() kernel.Vehicle { return c.vehicle }
func (c CreateCourierCommand) Location() kernel.Location { return c.location }
func (c CreateCourierCommand) MaxDistanceKm() *float64 { return c.maxDistanceKm }

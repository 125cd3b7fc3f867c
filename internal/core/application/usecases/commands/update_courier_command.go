package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// UpdateCourierCommand edits a courier's profile: contact fields, vehicle,
// current location and the optional delivery distance cap. Vehicle changes
// only affect deliveries opened afterwards.
type UpdateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID     string
	name          string
	phone         string
	email         string
	vehicle       kernel.Vehicle
	location      kernel.Location
	maxDistanceKm *float64

	guard guard.ConstructorGuard
}

// NewUpdateCourierCommand creates a command to edit a courier profile.
// Coordinates are bounds-checked here so a bad location never reaches the
// aggregate.
func NewUpdateCourierCommand(
	courierID string,
	name string,
	phone string,
	email string,
	vehicle kernel.Vehicle,
	location kernel.Location,
	maxDistanceKm *float64,
) (UpdateCourierCommand, error) {
	if courierID == "" {
		return UpdateCourierCommand{}, errs.NewValueIsRequiredError("courierID")
	}
	if err := errors.Join(vehicle.Validate(), location.Validate()); err != nil {
		return UpdateCourierCommand{}, err
	}

	cmd := UpdateCourierCommand{
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
func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

func (c UpdateCourierCommand) CourierID() string { return c.courierID }
func (c UpdateCourierCommand) Name() string { return c.name }
func (c UpdateCourierCommand) Phone() string { return c.phone }
func (c UpdateCourierCommand) Email() string { return c.email }
func (c UpdateCourierCommand) Vehicle() kernel.Vehicle { return c.vehicle }
func (c UpdateCourierCommand) Location() kernel.Location { return c.location }
func (c UpdateCourierCommand) MaxDistanceKm() *float64 { return c.maxDistanceKm }

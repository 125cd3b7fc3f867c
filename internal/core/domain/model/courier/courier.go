package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrCourierIsNotConstructed is returned when using an improperly
	// initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents a delivery courier. The id is a natural key chosen at
// registration (an employee code), not repository-assigned.
//
// Business rules enforced here:
//   - id and name are non-empty, the vehicle and location are valid
//   - maxDistanceKm, when set, is positive
//   - activation state flips through Activate/Deactivate only; whether a
//     deactivation is legal (no unfinished orders) is the registry's check,
//     since it needs repository access
type Courier struct {
	// id is the natural key the courier registered under
	id string
	// name is the courier's display name
	name string
	// phone and email are contact fields
	phone string
	email string
	// isActive marks whether the courier currently works shifts
	isActive bool
	// maxDistanceKm caps how far the courier takes orders; nil means no cap
	maxDistanceKm *float64
	// vehicle is the courier's current transport
	vehicle kernel.Vehicle
	// startedWorkAt is when the courier last began working (virtual time);
	// the inactivity sweep measures from here
	startedWorkAt time.Time
	// location is the courier's current position
	location kernel.Location

	guard guard.ConstructorGuard
}

// NewCourier creates an active courier.
func NewCourier(
	id string,
	name string,
	phone string,
	email string,
	vehicle kernel.Vehicle,
	location kernel.Location,
	startedWorkAt time.Time,
) (*Courier, error) {
	c := &Courier{
		isActive: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicle(vehicle),
		c.setLocation(location),
		c.setStartedWorkAt(startedWorkAt),
	); err != nil {
		return nil, err
	}

	c.phone = phone
	c.email = email
	return c, nil
}

// RestoreCourier reconstructs a Courier from persistent storage, including
// deactivated state and the optional distance cap.
func RestoreCourier(
	id string,
	name string,
	phone string,
	email string,
	isActive bool,
	maxDistanceKm *float64,
	vehicle kernel.Vehicle,
	location kernel.Location,
	startedWorkAt time.Time,
) (*Courier, error) {
	c, err := NewCourier(id, name, phone, email, vehicle, location, startedWorkAt)
	if err != nil {
		return nil, err
	}

	c.isActive = isActive
	if maxDistanceKm != nil {
		if err := c.SetMaxDistanceKm(maxDistanceKm); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the natural key.
func (c *Courier) ID() string {
	return c.id
}

// Name returns the display name.
func (c *Courier) Name() string {
	return c.name
}

// Phone returns the contact phone, possibly empty.
func (c *Courier) Phone() string {
	return c.phone
}

// Email returns the contact email, possibly empty.
func (c *Courier) Email() string {
	return c.email
}

// IsActive reports whether the courier currently works shifts.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// MaxDistanceKm returns the distance cap, or nil for no cap.
func (c *Courier) MaxDistanceKm() *float64 {
	if c.maxDistanceKm == nil {
		return nil
	}
	v := *c.maxDistanceKm
	return &v
}

// Vehicle returns the current transport.
func (c *Courier) Vehicle() kernel.Vehicle {
	return c.vehicle
}

// StartedWorkAt returns when the courier last began working.
func (c *Courier) StartedWorkAt() time.Time {
	return c.startedWorkAt
}

// Location returns the current position.
func (c *Courier) Location() kernel.Location {
	return c.location
}

// UpdateContact replaces the courier's contact fields. The name stays
// required; phone and email may be blank.
func (c *Courier) UpdateContact(name string, phone string, email string) error {
	if err := c.setName(name); err != nil {
		return err
	}
	c.phone = phone
	c.email = email
	return nil
}

// SetVehicle changes the courier's transport. Deliveries already opened keep
// their snapshotted vehicle.
func (c *Courier) SetVehicle(vehicle kernel.Vehicle) error {
	return c.setVehicle(vehicle)
}

// SetLocation moves the courier. The location carries its own bounds check.
func (c *Courier) SetLocation(location kernel.Location) error {
	return c.setLocation(location)
}

// SetMaxDistanceKm sets or clears the distance cap. A set cap must be positive.
func (c *Courier) SetMaxDistanceKm(maxDistanceKm *float64) error {
	if maxDistanceKm == nil {
		c.maxDistanceKm = nil
		return nil
	}
	if *maxDistanceKm <= 0 {
		return errs.NewValueIsInvalidError("max distance must be positive")
	}
	v := *maxDistanceKm
	c.maxDistanceKm = &v
	return nil
}

// Activate returns the courier to work and restarts the inactivity window.
func (c *Courier) Activate(at time.Time) error {
	if err := c.setStartedWorkAt(at); err != nil {
		return err
	}
	c.isActive = true
	return nil
}

// Deactivate takes the courier off shifts. The registry checks beforehand
// that no unfinished order is held.
func (c *Courier) Deactivate() {
	c.isActive = false
}

func (c *Courier) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("courier id")
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicle(vehicle kernel.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}

func (c *Courier) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

func (c *Courier) setStartedWorkAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("startedWorkAt")
	}
	c.startedWorkAt = at
	return nil
}

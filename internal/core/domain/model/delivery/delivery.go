package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

	// ErrDeliveryAlreadyClosed is returned when closing a delivery that
	// already has a completion and end time.
	ErrDeliveryAlreadyClosed = errs.NewConflictError("delivery is already closed")
)

// Delivery represents one courier attempt at an order.
//
// Invariants:
//   - The courier's vehicle is snapshotted at creation and never rewritten
//   - completion and endedAt are set together by Close, exactly once
//   - A closed delivery is immutable
type Delivery struct {
	// id is the repository-assigned identifier
	id int64
	// orderID is the order this attempt belongs to
	orderID int64
	// courierID is the courier working the attempt
	courierID string
	// vehicle is the courier's vehicle at the moment the delivery opened
	vehicle kernel.Vehicle
	// distanceKm is the great-circle distance from the courier to the order
	// at the moment the delivery opened
	distanceKm float64
	// startedAt is when the courier was associated to the order
	startedAt time.Time
	// completion records how the attempt ended; nil while open
	completion *Completion
	// endedAt records when the attempt ended; nil while open
	endedAt *time.Time

	guard guard.ConstructorGuard
}

// NewDelivery opens a delivery attempt for an order. The vehicle and
// distance are snapshots of the courier's state at association time.
func NewDelivery(
	id int64,
	orderID int64,
	courierID string,
	vehicle kernel.Vehicle,
	distanceKm float64,
	startedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setVehicle(vehicle),
		d.setDistanceKm(distanceKm),
		d.setStartedAt(startedAt),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery from persistent storage, including
// closed state. Completion and endedAt must be both nil or both set.
func RestoreDelivery(
	id int64,
	orderID int64,
	courierID string,
	vehicle kernel.Vehicle,
	distanceKm float64,
	startedAt time.Time,
	completion *Completion,
	endedAt *time.Time,
) (*Delivery, error) {
	d, err := NewDelivery(id, orderID, courierID, vehicle, distanceKm, startedAt)
	if err != nil {
		return nil, err
	}

	if (completion == nil) != (endedAt == nil) {
		return nil, errs.NewValueIsInvalidError("completion and endedAt must be set together")
	}

	if completion != nil {
		if err := completion.Validate(); err != nil {
			return nil, err
		}
		c := *completion
		at := *endedAt
		d.completion = &c
		d.endedAt = &at
	}

	return d, nil
}

// Validate ensures the Delivery was created through a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the repository-assigned identifier.
func (d *Delivery) ID() int64 {
	return d.id
}

// OrderID returns the order this attempt belongs to.
func (d *Delivery) OrderID() int64 {
	return d.orderID
}

// CourierID returns the courier working the attempt.
func (d *Delivery) CourierID() string {
	return d.courierID
}

// Vehicle returns the vehicle snapshotted when the delivery opened.
func (d *Delivery) Vehicle() kernel.Vehicle {
	return d.vehicle
}

// DistanceKm returns the distance snapshotted when the delivery opened.
func (d *Delivery) DistanceKm() float64 {
	return d.distanceKm
}

// StartedAt returns when the delivery opened.
func (d *Delivery) StartedAt() time.Time {
	return d.startedAt
}

// Completion returns how the attempt ended, or nil while open.
func (d *Delivery) Completion() *Completion {
	if d.completion == nil {
		return nil
	}
	c := *d.completion
	return &c
}

// EndedAt returns when the attempt ended, or nil while open.
func (d *Delivery) EndedAt() *time.Time {
	if d.endedAt == nil {
		return nil
	}
	at := *d.endedAt
	return &at
}

// IsOpen reports whether the attempt is still in flight (no end time).
func (d *Delivery) IsOpen() bool {
	return d.endedAt == nil
}

// Duration returns how long the attempt ran. For open deliveries the second
// return is false.
func (d *Delivery) Duration() (time.Duration, bool) {
	if d.endedAt == nil {
		return 0, false
	}
	return d.endedAt.Sub(d.startedAt), true
}

// Close ends the attempt with the given completion at the given time.
// Completion and end time are committed together; a second Close fails with
// ErrDeliveryAlreadyClosed and leaves the record untouched.
func (d *Delivery) Close(completion Completion, at time.Time) error {
	if !d.IsOpen() {
		return ErrDeliveryAlreadyClosed
	}

	if err := completion.Validate(); err != nil {
		return err
	}

	if at.Before(d.startedAt) {
		return errs.NewValueIsInvalidError("delivery cannot end before it started")
	}

	d.completion = &completion
	d.endedAt = &at
	return nil
}

func (d *Delivery) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("delivery id")
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setCourierID(courierID string) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courier id")
	}
	d.courierID = courierID
	return nil
}

func (d *Delivery) setVehicle(vehicle kernel.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	d.vehicle = vehicle
	return nil
}

func (d *Delivery) setDistanceKm(distanceKm float64) error {
	if distanceKm < 0 {
		return errs.NewValueIsInvalidError("distance cannot be negative")
	}
	d.distanceKm = distanceKm
	return nil
}

func (d *Delivery) setStartedAt(startedAt time.Time) error {
	if startedAt.IsZero() {
		return errs.NewValueIsRequiredError("startedAt")
	}
	d.startedAt = startedAt
	return nil
}

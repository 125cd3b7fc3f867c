package order

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for a dispatch order. Its lifecycle lives
// entirely in the association fields and timestamps below; status is derived,
// never stored (see DeriveStatus).
//
// Invariants:
//   - Address and customer name are non-empty
//   - Weight and volume are non-negative
//   - courierID and associatedAt are set and cleared together
//   - Transition methods are the only mutation path; each validates its
//     precondition before touching any field
type Order struct {
	// id is the repository-assigned identifier
	id int64

	// orderType classifies the goods and drives refusal semantics
	orderType Type

	// address is the human-readable destination
	address string

	// location is the geographic destination
	location kernel.Location

	// customerName and customerPhone identify the recipient
	customerName  string
	customerPhone string

	// weightKg and volumeLiters describe the package
	weightKg     float64
	volumeLiters float64

	// createdAt anchors the delivery-time commitment
	createdAt time.Time

	// courierID is the currently associated courier; nil when the order is open
	courierID *string

	// associatedAt, pickedUpAt, deliveredAt mark the lifecycle transitions;
	// status is derived from these, never stored
	associatedAt *time.Time
	pickedUpAt   *time.Time
	deliveredAt  *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an open order. All validation happens here; an order that
// exists is a valid order.
func NewOrder(
	id int64,
	orderType Type,
	address string,
	location kernel.Location,
	customerName string,
	customerPhone string,
	weightKg float64,
	volumeLiters float64,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setType(orderType),
		o.setAddress(address),
		o.setLocation(location),
		o.setCustomer(customerName, customerPhone),
		o.setDimensions(weightKg, volumeLiters),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, including any
// in-flight or completed lifecycle state.
func RestoreOrder(
	id int64,
	orderType Type,
	address string,
	location kernel.Location,
	customerName string,
	customerPhone string,
	weightKg float64,
	volumeLiters float64,
	createdAt time.Time,
	courierID *string,
	associatedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, orderType, address, location, customerName, customerPhone, weightKg, volumeLiters, createdAt)
	if err != nil {
		return nil, err
	}

	if (courierID == nil) != (associatedAt == nil) {
		return nil, errs.NewValueIsInvalidError("courierID and associatedAt must be set together")
	}

	if courierID != nil {
		cid := *courierID
		at := *associatedAt
		o.courierID = &cid
		o.associatedAt = &at
	}
	if pickedUpAt != nil {
		at := *pickedUpAt
		o.pickedUpAt = &at
	}
	if deliveredAt != nil {
		at := *deliveredAt
		o.deliveredAt = &at
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the repository-assigned identifier.
func (o *Order) ID() int64 {
	return o.id
}

// OrderType returns the goods classification.
func (o *Order) OrderType() Type {
	return o.orderType
}

// Address returns the human-readable destination.
func (o *Order) Address() string {
	return o.address
}

// Location returns the geographic destination.
func (o *Order) Location() kernel.Location {
	return o.location
}

// CustomerName returns the recipient's name.
func (o *Order) CustomerName() string {
	return o.customerName
}

// CustomerPhone returns the recipient's phone, possibly empty.
func (o *Order) CustomerPhone() string {
	return o.customerPhone
}

// WeightKg returns the package weight.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// VolumeLiters returns the package volume.
func (o *Order) VolumeLiters() float64 {
	return o.volumeLiters
}

// CreatedAt returns when the order entered the system (virtual time).
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// CourierID returns the currently associated courier, or nil.
func (o *Order) CourierID() *string {
	if o.courierID == nil {
		return nil
	}
	cid := *o.courierID
	return &cid
}

// AssociatedAt returns when the current courier was associated, or nil.
func (o *Order) AssociatedAt() *time.Time {
	return copyTime(o.associatedAt)
}

// PickedUpAt returns when the current courier picked the order up, or nil.
func (o *Order) PickedUpAt() *time.Time {
	return copyTime(o.pickedUpAt)
}

// DeliveredAt returns when the order closed, or nil while unfinished.
func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

// IsFinished reports whether the order has closed (delivered or refused
// terminally).
func (o *Order) IsFinished() bool {
	return o.deliveredAt != nil
}

// Associate attaches a courier to the order at the given time.
//
// Preconditions: the order is not finished and has no active courier.
// Whether the courier itself is free is the caller's check - the aggregate
// only knows its own side of the association.
func (o *Order) Associate(courierID string, at time.Time) error {
	if courierID == "" {
		return errs.NewValueIsRequiredError("courier id")
	}
	if o.deliveredAt != nil {
		return errs.NewConflictError("order is already finished")
	}
	if o.courierID != nil {
		return errs.NewConflictError("order already has an active courier")
	}

	o.courierID = &courierID
	o.associatedAt = &at
	return nil
}

// PickUp marks the order as picked up by its associated courier.
//
// Preconditions: a courier is associated, the order was not already picked
// up, and the order is not finished.
func (o *Order) PickUp(at time.Time) error {
	if o.deliveredAt != nil {
		return errs.NewConflictError("order is already finished")
	}
	if o.courierID == nil {
		return errs.NewValueIsInvalidError("pick up requires an associated courier")
	}
	if o.pickedUpAt != nil {
		return errs.NewConflictError("order is already picked up")
	}

	o.pickedUpAt = &at
	return nil
}

// Deliver closes the order as delivered.
//
// Preconditions: the order was picked up and is not already finished.
func (o *Order) Deliver(at time.Time) error {
	if o.deliveredAt != nil {
		return errs.NewConflictError("order is already finished")
	}
	if o.pickedUpAt == nil {
		return errs.NewValueIsInvalidError("deliver requires a prior pickup")
	}

	o.deliveredAt = &at
	return nil
}

// CloseRefused closes the order permanently after a customer refusal.
// Only perishable orders close this way; everything else resets instead
// (see Reset). The courier association is kept for the record.
func (o *Order) CloseRefused(at time.Time) error {
	if o.deliveredAt != nil {
		return errs.NewConflictError("order is already finished")
	}
	if o.courierID == nil {
		return errs.NewValueIsInvalidError("refusal requires an associated courier")
	}
	if !o.orderType.IsPerishable() {
		return errs.NewValueIsInvalidError("only perishable orders close on refusal")
	}

	o.deliveredAt = &at
	return nil
}

// Reset clears the courier association and in-flight timestamps, returning
// the order to open. Used after a non-perishable refusal and after a
// cancellation; a finished order cannot be reset.
func (o *Order) Reset() error {
	if o.deliveredAt != nil {
		return errs.NewConflictError("order is already finished")
	}

	o.courierID = nil
	o.associatedAt = nil
	o.pickedUpAt = nil
	return nil
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setType(orderType Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	o.orderType = orderType
	return nil
}

func (o *Order) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.location = location
	return nil
}

func (o *Order) setCustomer(name string, phone string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customer name")
	}
	o.customerName = name
	o.customerPhone = phone
	return nil
}

func (o *Order) setDimensions(weightKg float64, volumeLiters float64) error {
	if weightKg < 0 {
		return errs.NewValueIsInvalidError("weight cannot be negative")
	}
	if volumeLiters < 0 {
		return errs.NewValueIsInvalidError("volume cannot be negative")
	}
	o.weightKg = weightKg
	o.volumeLiters = volumeLiters
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

package order

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
)

// Status is the derived lifecycle state of an order. It is never persisted;
// DeriveStatus recomputes it from source fields on every read, so
// recomputation without mutation is idempotent by construction.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Open means the order waits for a courier.
	Open

	// InProgress means a courier is associated or already carrying the order.
	InProgress

	// Delivered means the order closed with a successful handover.
	Delivered

	// Refused means the order closed because the customer refused a
	// perishable order that cannot be redelivered.
	Refused

	// Canceled means the order closed through the explicit reset path with a
	// cancelled final attempt.
	Canceled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Open:          "Open",
		InProgress:    "InProgress",
		Delivered:     "Delivered",
		Refused:       "Refused",
		Canceled:      "Canceled",
	}
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// DeriveStatus computes the order status purely from its source fields.
//
// The rules, in order:
//   - deliveredAt set: the last delivery attempt's completion decides
//     between Delivered, Refused (CustomerRefused) and Canceled (Cancelled)
//   - any association or pickup present: InProgress
//   - otherwise: Open
//
// lastCompletion is the completion of the order's most recent delivery
// attempt, nil when the order has no closed attempts.
func DeriveStatus(
	courierID *string,
	associatedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	lastCompletion *delivery.Completion,
) Status {
	if deliveredAt != nil {
		if lastCompletion != nil {
			switch *lastCompletion {
			case delivery.CustomerRefused:
				return Refused
			case delivery.Cancelled:
				return Canceled
			}
		}
		return Delivered
	}

	if courierID != nil || associatedAt != nil || pickedUpAt != nil {
		return InProgress
	}

	return Open
}

// StatusWith derives the order's status given the completion of its most
// recent delivery attempt.
func (o *Order) StatusWith(lastCompletion *delivery.Completion) Status {
	return DeriveStatus(o.courierID, o.associatedAt, o.pickedUpAt, o.deliveredAt, lastCompletion)
}

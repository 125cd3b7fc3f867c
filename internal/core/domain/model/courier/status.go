package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the derived operational state of a courier. It is never
// persisted; DeriveStatus recomputes it from the isActive flag and the
// presence of an open delivery on every read.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Inactive means the courier is off shifts.
	Inactive

	// Available means the courier works shifts and has no open delivery.
	Available

	// OnRoute means the courier is working an open delivery. This sub-state
	// is never directly settable; it only appears through an open delivery.
	OnRoute
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Inactive:      "Inactive",
		Available:     "Available",
		OnRoute:       "OnRoute",
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

// ParseStatus converts a string produced by String back into a Status.
func ParseStatus(s string) (Status, error) {
	for st, str := range getStatusStrings() {
		if st != StatusUnknown && str == s {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%q is not a valid status", s))
}

// ValidateDirectlySettable rejects statuses that only the system may derive.
// Callers can request Available or Inactive; OnRoute exists only through an
// open delivery.
func (s Status) ValidateDirectlySettable() error {
	switch s {
	case Available, Inactive:
		return nil
	case OnRoute:
		return errs.NewConflictError("on-route status is derived and cannot be set directly")
	default:
		return errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%d is not a valid status", s))
	}
}

// DeriveStatus computes the courier status purely from its source fields:
// Inactive wins over everything, then an open delivery means OnRoute,
// otherwise Available.
func DeriveStatus(isActive bool, hasOpenDelivery bool) Status {
	if !isActive {
		return Inactive
	}
	if hasOpenDelivery {
		return OnRoute
	}
	return Available
}

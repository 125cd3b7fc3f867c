package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Type classifies what an order carries. The type decides what a customer
// refusal does to the order: perishable food closes permanently, everything
// else reopens for another courier.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	// This value (0) helps catch uninitialized Type values.
	TypeUnknown Type = iota

	// RestaurantFood is prepared food. A refused food order cannot be
	// redelivered and closes permanently.
	RestaurantFood

	// Groceries are supermarket goods.
	Groceries

	// Retail is everything else (parcels, store purchases).
	Retail
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:    "Unknown",
		RestaurantFood: "RestaurantFood",
		Groceries:      "Groceries",
		Retail:         "Retail",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		RestaurantFood: "RestaurantFood",
		Groceries:      "Groceries",
		Retail:         "Retail",
	}
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

// String returns the human-readable name of the type.
// It implements fmt.Stringer and is safe on any Type value.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// IsPerishable reports whether a refused order of this type closes
// permanently instead of reopening.
func (t Type) IsPerishable() bool {
	return t == RestaurantFood
}

// ParseType converts a string produced by String back into a Type.
func ParseType(s string) (Type, error) {
	for t, str := range getValidTypeStrings() {
		if str == s {
			return t, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause("order type", fmt.Errorf("%q is not a valid order type", s))
}

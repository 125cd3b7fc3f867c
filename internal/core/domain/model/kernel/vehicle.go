package kernel

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Vehicle identifies the transport a courier rides. The vehicle assigned to
// a delivery is snapshotted when the delivery opens, so a later change to
// the courier's vehicle never rewrites history.
type Vehicle int

const (
	// VehicleUnknown represents an invalid or undefined vehicle.
	// This value (0) helps catch uninitialized Vehicle values.
	VehicleUnknown Vehicle = iota

	// VehicleOnFoot is a courier walking deliveries.
	VehicleOnFoot

	// VehicleBicycle is a courier on a bicycle.
	VehicleBicycle

	// VehicleScooter is a courier on a motor scooter.
	VehicleScooter

	// VehicleCar is a courier driving. Car speed doubles as the fallback speed for
	// travel-time estimates when a configured speed is missing or non-positive.
	VehicleCar
)

// getVehicleStrings returns a map of Vehicle values to their string representations.
func getVehicleStrings() map[Vehicle]string {
	return map[Vehicle]string{
		VehicleUnknown: "Unknown",
		VehicleOnFoot:  "OnFoot",
		VehicleBicycle: "Bicycle",
		VehicleScooter: "Scooter",
		VehicleCar:     "Car",
	}
}

// getValidVehicleStrings returns a map of only valid Vehicle values.
func getValidVehicleStrings() map[Vehicle]string {
	//nolint:exhaustive // VehicleUnknown is intentionally excluded as it's invalid
	return map[Vehicle]string{
		VehicleOnFoot:  "OnFoot",
		VehicleBicycle: "Bicycle",
		VehicleScooter: "Scooter",
		VehicleCar:     "Car",
	}
}

// Validate checks if the Vehicle value is valid.
// VehicleUnknown (0) and any other values are invalid.
func (v Vehicle) Validate() error {
	if _, ok := getValidVehicleStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle", fmt.Errorf("%d is not a valid vehicle", v))
	}
	return nil
}

// String returns the human-readable name of the vehicle.
// It implements fmt.Stringer and is safe on any Vehicle value.
func (v Vehicle) String() string {
	if str, ok := getVehicleStrings()[v]; ok {
		return str
	}
	return "Unknown"
}

// ParseVehicle converts a string produced by String back into a Vehicle.
// Returns an error for unrecognized names.
func ParseVehicle(s string) (Vehicle, error) {
	for v, str := range getValidVehicleStrings() {
		if str == s {
			return v, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle", fmt.Errorf("%q is not a valid vehicle", s))
}

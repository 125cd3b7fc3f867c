package kernel

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Geographic coordinate bounds in decimal degrees.
const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable value object holding a validated geographic
// coordinate pair in decimal degrees. The zero value is invalid and fails
// validation - use NewLocation to create instances.
//
// Example:
//
//	loc, err := kernel.NewLocation(55.7558, 37.6173)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(loc) // Output: Location(55.755800,37.617300)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in decimal
// degrees. Latitude must lie in [-90, 90] and longitude in [-180, 180];
// both bound violations are reported together.
func NewLocation(latitude float64, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was built through NewLocation.
// The zero value fails with ErrLocationIsNotConstructed.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in decimal degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String implements fmt.Stringer with the format "Location(lat,lon)".
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two locations coordinate-by-coordinate. Both locations
// must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers, so construction can self-encapsulate its validation.
func (l *Location) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
func (l *Location) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	l.longitude = longitude
	return nil
}

// Package geo provides pure great-circle distance and travel-time functions.
// Nothing here carries state; callers supply coordinates and speeds.
package geo

import (
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

const (
	// EarthRadiusKm is Earth's mean radius in kilometers for the Haversine formula.
	EarthRadiusKm = 6371.0

	degToRad = math.Pi / 180
)

// DistanceKm calculates the great-circle distance between two locations in
// kilometers using the Haversine formula:
//
//	d = 2R·asin(√(sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlon/2)))
//
// Both locations must be properly constructed.
func DistanceKm(from kernel.Location, to kernel.Location) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}

	lat1 := from.Latitude() * degToRad
	lat2 := to.Latitude() * degToRad
	dLat := (to.Latitude() - from.Latitude()) * degToRad
	dLon := (to.Longitude() - from.Longitude()) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(a)), nil
}

// TravelTime estimates how long covering distanceKm takes at speedKmh.
// A non-positive speed falls back to fallbackKmh (by convention the Car
// speed) so the estimate never divides by zero or goes negative. If the
// fallback is non-positive too, the estimate is zero.
func TravelTime(distanceKm float64, speedKmh float64, fallbackKmh float64) time.Duration {
	if speedKmh <= 0 {
		speedKmh = fallbackKmh
	}
	if speedKmh <= 0 || distanceKm <= 0 {
		return 0
	}

	hours := distanceKm / speedKmh
	return time.Duration(hours * float64(time.Hour))
}

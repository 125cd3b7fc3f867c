package services

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/geo"
)

// ErrCourierNotFound is returned when no suitable courier is available for an
// order. This occurs when no couriers are provided or none of the provided
// couriers can reach the order within their distance cap.
var ErrCourierNotFound = errors.New("courier not found")

// SpeedResolver supplies the travel speed for a vehicle. The fallback applies
// when a vehicle has no configured speed.
type SpeedResolver interface {
	SpeedKmh(vehicle kernel.Vehicle) float64
	FallbackSpeedKmh() float64
}

// Dispatcher is a domain service that selects the best courier for an order
// by estimated travel time.
//
// Business rules:
//   - Only active couriers are considered
//   - A courier's distance cap excludes orders beyond their reach
//   - Selection minimizes the estimated travel time to the order
//   - Ties go to the first courier in the input slice
//
// Example usage:
//
//	dispatcher := NewDispatcher(speeds)
//	best, err := dispatcher.SelectCourier(o, availableCouriers)
//	if errors.Is(err, ErrCourierNotFound) {
//	    // No courier can take this order right now
//	    return
//	}
type Dispatcher struct {
	speeds SpeedResolver
}

// NewDispatcher creates a Dispatcher that ranks couriers with the given speeds.
func NewDispatcher(speeds SpeedResolver) Dispatcher {
	return Dispatcher{speeds: speeds}
}

// SelectCourier returns the courier with the shortest estimated travel time
// to the order among the eligible candidates. The caller supplies candidates
// that are free; this service applies activity and reach checks on top.
func (d Dispatcher) SelectCourier(
	o *order.Order, couriers []*courier.Courier,
) (*courier.Courier, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var (
		best     *courier.Courier
		bestTime time.Duration
	)

	for _, c := range couriers {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if !c.IsActive() {
			continue
		}

		distanceKm, err := geo.DistanceKm(c.Location(), o.Location())
		if err != nil {
			return nil, err
		}
		if limit := c.MaxDistanceKm(); limit != nil && distanceKm > *limit {
			continue
		}

		travel := geo.TravelTime(
			distanceKm, d.speeds.SpeedKmh(c.Vehicle()), d.speeds.FallbackSpeedKmh())
		if best == nil || travel < bestTime {
			best = c
			bestTime = travel
		}
	}

	if best == nil {
		return nil, ErrCourierNotFound
	}

	return best, nil
}

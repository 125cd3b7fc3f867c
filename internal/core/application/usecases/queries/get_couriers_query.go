package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetCouriersQueryIsNotConstructed = errors.New(
	"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
)

// GetCouriersQuery retrieves all couriers with their derived operational
// status.
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a parameterless query for the courier list.
func NewGetCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// CourierRow is one courier as seen by readers. Status is derived from the
// active flag and the presence of an open delivery.
type CourierRow struct {
	ID            string
	Name          string
	Phone         string
	Email         string
	Vehicle       kernel.Vehicle
	Location      kernel.Location
	MaxDistanceKm *float64
	StartedWorkAt time.Time

	Status courier.Status
}

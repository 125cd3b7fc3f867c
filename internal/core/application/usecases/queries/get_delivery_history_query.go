package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrGetDeliveryHistoryQueryIsNotConstructed = errors.New(
	"GetDeliveryHistoryQuery must be created via NewGetDeliveryHistoryQuery constructor",
)

// UnknownCourierName substitutes for a courier that was deleted after its
// deliveries were recorded. The history read never fails over a missing
// courier.
const UnknownCourierName = "Unknown"

// GetDeliveryHistoryQuery retrieves every delivery attempt recorded for one
// order, oldest first.
type GetDeliveryHistoryQuery struct {
	orderID int64

	guard guard.ConstructorGuard
}

func NewGetDeliveryHistoryQuery(orderID int64) (GetDeliveryHistoryQuery, error) {
	if orderID <= 0 {
		return GetDeliveryHistoryQuery{}, errs.NewValueIsInvalidError("orderID")
	}

	return GetDeliveryHistoryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDeliveryHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryHistoryQueryIsNotConstructed)
}

func (q GetDeliveryHistoryQuery) OrderID() int64 { return q.orderID }

// DeliveryRow is one recorded delivery attempt. Vehicle and DistanceKm are
// snapshots from association time, not the courier's current profile.
type DeliveryRow struct {
	ID          int64
	OrderID     int64
	CourierID   string
	CourierName string
	Vehicle     kernel.Vehicle
	DistanceKm  float64
	StartedAt   time.Time
	Completion  *delivery.Completion
	EndedAt     *time.Time
}

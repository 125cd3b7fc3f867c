package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

// GetOrdersQuery retrieves all orders with their derived statuses.
//
// Example:
//
//	query := NewGetOrdersQuery()
//	handler := NewGetOrdersQueryHandler(uowFactory, clock, params)
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list orders: %w", err)
//	}
//	for _, row := range rows {
//	    fmt.Printf("order %d: %s (%s)\n", row.ID, row.Status, row.ScheduleStatus)
//	}
type GetOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a parameterless query for the full order list.
func NewGetOrdersQuery() GetOrdersQuery {
	return GetOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OrderRow is one order as seen by readers. Status and ScheduleStatus are
// computed at read time and never stored.
type OrderRow struct {
	ID            int64
	OrderType     order.Type
	Address       string
	Location      kernel.Location
	CustomerName  string
	CustomerPhone string
	WeightKg      float64
	VolumeLiters  float64
	CreatedAt     time.Time

	CourierID    *string
	AssociatedAt *time.Time
	PickedUpAt   *time.Time
	DeliveredAt  *time.Time

	Status         order.Status
	ScheduleStatus order.ScheduleStatus
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Lookups that can miss return errs.ErrObjectNotFound so callers get a cheap
// existence check instead of a thrown failure.
type OrderRepository interface {
	// NextID allocates the identifier for a new order. Identity generation
	// belongs to the repository because ids are storage-assigned integers.
	NextID(ctx context.Context) (int64, error)

	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAll retrieves every order.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// GetAllUnfinished retrieves orders with no delivered timestamp,
	// assigned or not. The simulation tick works from this set.
	GetAllUnfinished(ctx context.Context) ([]*order.Order, error)

	// GetAllUnassigned retrieves unfinished orders with no courier.
	GetAllUnassigned(ctx context.Context) ([]*order.Order, error)

	// GetAllUnfinishedByCourier retrieves the courier's unfinished orders.
	// Association and deactivation checks rely on this being exact.
	GetAllUnfinishedByCourier(ctx context.Context, courierID string) ([]*order.Order, error)
}

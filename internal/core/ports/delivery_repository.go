package ports

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"
)

// DeliveryRepository defines the persistence contract for delivery records.
type DeliveryRepository interface {
	// NextID allocates the identifier for a new delivery.
	NextID(ctx context.Context) (int64, error)

	// Add persists a new delivery.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by id.
	Get(ctx context.Context, id int64) (*delivery.Delivery, error)

	// GetAll retrieves every delivery ordered by start time ascending.
	GetAll(ctx context.Context) ([]*delivery.Delivery, error)

	// GetAllByOrder retrieves the order's deliveries ordered by start
	// time ascending.
	GetAllByOrder(ctx context.Context, orderID int64) ([]*delivery.Delivery, error)

	// GetLastByOrder retrieves the order's most recently started delivery.
	// Status derivation reads the completion off this record.
	GetLastByOrder(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// GetOpenByOrder retrieves the order's open delivery. At most one
	// delivery per order is open at a time.
	GetOpenByOrder(ctx context.Context, orderID int64) (*delivery.Delivery, error)

	// GetOpenByCourier retrieves the courier's open delivery, if any.
	GetOpenByCourier(ctx context.Context, courierID string) (*delivery.Delivery, error)

	// GetLastClosedByCourier retrieves the courier's most recently closed
	// delivery. Its duration drives the post-delivery cooldown.
	GetLastClosedByCourier(ctx context.Context, courierID string) (*delivery.Delivery, error)
}

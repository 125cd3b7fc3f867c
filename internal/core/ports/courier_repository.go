package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates.
// Couriers are keyed by their natural string id.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier by id.
	Get(ctx context.Context, id string) (*courier.Courier, error)

	// GetAll retrieves every courier.
	GetAll(ctx context.Context) ([]*courier.Courier, error)

	// GetAllActive retrieves couriers currently accepting work.
	GetAllActive(ctx context.Context) ([]*courier.Courier, error)

	// Delete removes a courier by id.
	Delete(ctx context.Context, id string) error
}

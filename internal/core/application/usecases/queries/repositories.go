// Package queries contains read operations in the CQRS architecture.
// Queries never trust stored state for anything derivable: order, schedule
// and courier statuses are recomputed from timestamps on every read.
package queries

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

type (
	// UoW provides a read scope over the repositories. Queries begin a
	// unit, read, and roll back; they never write.
	UoW interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		OrderRepository() ports.OrderRepository
		CourierRepository() ports.CourierRepository
		DeliveryRepository() ports.DeliveryRepository
	}

	// UoWFactory creates new read scopes.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock supplies the virtual time prospective schedule status is computed
// against.
type Clock interface {
	Now() time.Time
}

// ScheduleParams supplies the delivery-time commitment thresholds.
type ScheduleParams interface {
	MaxDeliveryTime() time.Duration
	RiskRange() time.Duration
}

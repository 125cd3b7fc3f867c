// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, persistence, then notification.
package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. These abstractions ensure data consistency across aggregate
// boundaries.
type (
	// TxManager handles transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CourierRepoFactory provides access to the courier repository within a
	// transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// DeliveryRepoFactory provides access to the delivery repository within
	// a transaction.
	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CourierUoW manages transactions for operations that touch couriers
	// and need the order set for legality checks.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// UoW manages transactions across orders, couriers and deliveries.
	// Used for the transition operations that coordinate all three.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   deliveryRepo := uow.DeliveryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
		DeliveryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock supplies the virtual application time every mutation is stamped
// with. Handlers never read the wall clock.
type Clock interface {
	Now() time.Time
}

// Notifier receives change notifications after a handler commits. The
// persisted state change always happens-before the notification.
type Notifier interface {
	NotifyOrderChanged(id int64)
	NotifyCourierChanged(id string)
	NotifyDeliveryChanged(id int64)
}

// NopNotifier discards notifications. Useful in tests and tools that do not
// observe changes.
type NopNotifier struct{}

func (NopNotifier) NotifyOrderChanged(int64) {}
func (NopNotifier) NotifyCourierChanged(string) {}
func (NopNotifier) NotifyDeliveryChanged(int64) {}

package ports

import "context"

// UnitOfWork groups repository work into a single atomic scope. A handler
// begins the unit, mutates aggregates through the repositories it exposes and
// commits, or rolls back on failure. Repositories obtained from a unit are
// only valid between Begin and Commit/Rollback.
type UnitOfWork interface {
	// Begin opens the transactional scope.
	Begin(ctx context.Context) error

	// Commit applies all changes made within the scope.
	Commit(ctx context.Context) error

	// Rollback discards all changes made within the scope. Calling it
	// after a successful Commit is a no-op, which keeps deferred
	// rollbacks safe.
	Rollback(ctx context.Context) error

	// OrderRepository returns the order repository bound to this unit.
	OrderRepository() OrderRepository

	// CourierRepository returns the courier repository bound to this unit.
	CourierRepository() CourierRepository

	// DeliveryRepository returns the delivery repository bound to this unit.
	DeliveryRepository() DeliveryRepository
}

// UnitOfWorkFactory creates fresh units of work. Handlers hold the factory,
// never a unit, so each command gets its own scope.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

package memory

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

var ErrNoActiveTransaction = errors.New("no active transaction")

// UnitOfWork implements the transactional scope over the store's single
// mutex. Begin takes the lock, Commit applies the staged changes and
// releases it, Rollback discards them and releases it. Repositories hand out
// deep copies, so an aggregate mutated by a handler never touches the store
// until Update is staged and committed.
type UnitOfWork struct {
	store  *Store
	active bool

	stagedOrders     map[int64]*order.Order
	stagedCouriers   map[string]*courier.Courier
	stagedDeliveries map[int64]*delivery.Delivery
	deletedCouriers  map[string]struct{}
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}

	uow.store.mu.Lock()
	uow.active = true
	uow.stagedOrders = make(map[int64]*order.Order)
	uow.stagedCouriers = make(map[string]*courier.Courier)
	uow.stagedDeliveries = make(map[int64]*delivery.Delivery)
	uow.deletedCouriers = make(map[string]struct{})
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoActiveTransaction
	}

	for id, aggregate := range uow.stagedOrders {
		uow.store.orders[id] = aggregate
	}
	for id, aggregate := range uow.stagedCouriers {
		uow.store.couriers[id] = aggregate
	}
	for id, aggregate := range uow.stagedDeliveries {
		uow.store.deliveries[id] = aggregate
	}
	for id := range uow.deletedCouriers {
		delete(uow.store.couriers, id)
	}

	uow.finish()
	return nil
}

// Rollback discards staged changes. After a successful Commit it is a no-op,
// which keeps deferred rollbacks safe.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return nil
	}

	uow.finish()
	return nil
}

func (uow *UnitOfWork) finish() {
	uow.stagedOrders = nil
	uow.stagedCouriers = nil
	uow.stagedDeliveries = nil
	uow.deletedCouriers = nil
	uow.active = false
	uow.store.mu.Unlock()
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow}
}

func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &courierRepository{uow: uow}
}

func (uow *UnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return &deliveryRepository{uow: uow}
}

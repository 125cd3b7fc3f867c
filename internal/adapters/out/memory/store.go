// Package memory provides an in-process implementation of the persistence
// ports. One coarse mutex serializes units of work, which makes every
// "read, derive, validate, write" sequence atomic with respect to concurrent
// API callers and the simulation thread.
package memory

import (
	"sync"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Store owns the aggregate maps. All access goes through units of work
// created by Create.
type Store struct {
	mu sync.Mutex

	orders     map[int64]*order.Order
	couriers   map[string]*courier.Courier
	deliveries map[int64]*delivery.Delivery

	nextOrderID    int64
	nextDeliveryID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders:     make(map[int64]*order.Order),
		couriers:   make(map[string]*courier.Courier),
		deliveries: make(map[int64]*delivery.Delivery),
	}
}

// Create returns a fresh unit of work over this store.
func (s *Store) Create() ports.UnitOfWork {
	return &UnitOfWork{store: s}
}

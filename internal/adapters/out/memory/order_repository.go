package memory

import (
	"context"
	"sort"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

type orderRepository struct {
	uow *UnitOfWork
}

func cloneOrder(src *order.Order) (*order.Order, error) {
	return order.RestoreOrder(
		src.ID(),
		src.OrderType(),
		src.Address(),
		src.Location(),
		src.CustomerName(),
		src.CustomerPhone(),
		src.WeightKg(),
		src.VolumeLiters(),
		src.CreatedAt(),
		src.CourierID(),
		src.AssociatedAt(),
		src.PickedUpAt(),
		src.DeliveredAt(),
	)
}

// lookup resolves an order against staged changes first, then the store.
func (r *orderRepository) lookup(id int64) (*order.Order, bool) {
	if aggregate, ok := r.uow.stagedOrders[id]; ok {
		return aggregate, true
	}
	aggregate, ok := r.uow.store.orders[id]
	return aggregate, ok
}

func (r *orderRepository) merged() []*order.Order {
	all := make([]*order.Order, 0, len(r.uow.store.orders)+len(r.uow.stagedOrders))
	for id, aggregate := range r.uow.store.orders {
		if _, staged := r.uow.stagedOrders[id]; staged {
			continue
		}
		all = append(all, aggregate)
	}
	for _, aggregate := range r.uow.stagedOrders {
		all = append(all, aggregate)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID() < all[j].ID() })
	return all
}

func (r *orderRepository) collect(keep func(*order.Order) bool) ([]*order.Order, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	var out []*order.Order
	for _, aggregate := range r.merged() {
		if !keep(aggregate) {
			continue
		}
		clone, err := cloneOrder(aggregate)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	return out, nil
}

func (r *orderRepository) NextID(_ context.Context) (int64, error) {
	if !r.uow.active {
		return 0, ErrNoActiveTransaction
	}

	r.uow.store.nextOrderID++
	return r.uow.store.nextOrderID, nil
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); ok {
		return errs.NewObjectAlreadyExistsError("orderID", aggregate.ID())
	}

	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedOrders[aggregate.ID()] = clone
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	}

	clone, err := cloneOrder(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedOrders[aggregate.ID()] = clone
	return nil
}

func (r *orderRepository) Get(_ context.Context, id int64) (*order.Order, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	aggregate, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return cloneOrder(aggregate)
}

func (r *orderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.collect(func(*order.Order) bool { return true })
}

func (r *orderRepository) GetAllUnfinished(ctx context.Context) ([]*order.Order, error) {
	return r.collect(func(o *order.Order) bool { return o.DeliveredAt() == nil })
}

func (r *orderRepository) GetAllUnassigned(ctx context.Context) ([]*order.Order, error) {
	return r.collect(func(o *order.Order) bool {
		return o.DeliveredAt() == nil && o.CourierID() == nil
	})
}

func (r *orderRepository) GetAllUnfinishedByCourier(
	ctx context.Context, courierID string,
) ([]*order.Order, error) {
	return r.collect(func(o *order.Order) bool {
		return o.DeliveredAt() == nil && o.CourierID() != nil && *o.CourierID() == courierID
	})
}

package memory

import (
	"context"
	"sort"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"
)

type deliveryRepository struct {
	uow *UnitOfWork
}

func cloneDelivery(src *delivery.Delivery) (*delivery.Delivery, error) {
	return delivery.RestoreDelivery(
		src.ID(),
		src.OrderID(),
		src.CourierID(),
		src.Vehicle(),
		src.DistanceKm(),
		src.StartedAt(),
		src.Completion(),
		src.EndedAt(),
	)
}

func (r *deliveryRepository) lookup(id int64) (*delivery.Delivery, bool) {
	if aggregate, ok := r.uow.stagedDeliveries[id]; ok {
		return aggregate, true
	}
	aggregate, ok := r.uow.store.deliveries[id]
	return aggregate, ok
}

// merged yields all deliveries ordered by start time ascending, id as the
// tie break.
func (r *deliveryRepository) merged() []*delivery.Delivery {
	all := make([]*delivery.Delivery, 0, len(r.uow.store.deliveries)+len(r.uow.stagedDeliveries))
	for id, aggregate := range r.uow.store.deliveries {
		if _, staged := r.uow.stagedDeliveries[id]; staged {
			continue
		}
		all = append(all, aggregate)
	}
	for _, aggregate := range r.uow.stagedDeliveries {
		all = append(all, aggregate)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].StartedAt().Equal(all[j].StartedAt()) {
			return all[i].ID() < all[j].ID()
		}
		return all[i].StartedAt().Before(all[j].StartedAt())
	})
	return all
}

func (r *deliveryRepository) collect(keep func(*delivery.Delivery) bool) ([]*delivery.Delivery, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	var out []*delivery.Delivery
	for _, aggregate := range r.merged() {
		if !keep(aggregate) {
			continue
		}
		clone, err := cloneDelivery(aggregate)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	return out, nil
}

func (r *deliveryRepository) NextID(_ context.Context) (int64, error) {
	if !r.uow.active {
		return 0, ErrNoActiveTransaction
	}

	r.uow.store.nextDeliveryID++
	return r.uow.store.nextDeliveryID, nil
}

func (r *deliveryRepository) Add(_ context.Context, aggregate *delivery.Delivery) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); ok {
		return errs.NewObjectAlreadyExistsError("deliveryID", aggregate.ID())
	}

	clone, err := cloneDelivery(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedDeliveries[aggregate.ID()] = clone
	return nil
}

func (r *deliveryRepository) Update(_ context.Context, aggregate *delivery.Delivery) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("deliveryID", aggregate.ID())
	}

	clone, err := cloneDelivery(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedDeliveries[aggregate.ID()] = clone
	return nil
}

func (r *deliveryRepository) Get(_ context.Context, id int64) (*delivery.Delivery, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	aggregate, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("deliveryID", id)
	}
	return cloneDelivery(aggregate)
}

func (r *deliveryRepository) GetAll(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.collect(func(*delivery.Delivery) bool { return true })
}

func (r *deliveryRepository) GetAllByOrder(
	ctx context.Context, orderID int64,
) ([]*delivery.Delivery, error) {
	return r.collect(func(d *delivery.Delivery) bool { return d.OrderID() == orderID })
}

func (r *deliveryRepository) GetLastByOrder(
	ctx context.Context, orderID int64,
) (*delivery.Delivery, error) {
	attempts, err := r.GetAllByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(attempts) == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	return attempts[len(attempts)-1], nil
}

func (r *deliveryRepository) GetOpenByOrder(
	ctx context.Context, orderID int64,
) (*delivery.Delivery, error) {
	open, err := r.collect(func(d *delivery.Delivery) bool {
		return d.OrderID() == orderID && d.IsOpen()
	})
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, errs.NewObjectNotFoundError("orderID", orderID)
	}
	return open[0], nil
}

func (r *deliveryRepository) GetOpenByCourier(
	ctx context.Context, courierID string,
) (*delivery.Delivery, error) {
	open, err := r.collect(func(d *delivery.Delivery) bool {
		return d.CourierID() == courierID && d.IsOpen()
	})
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return nil, errs.NewObjectNotFoundError("courierID", courierID)
	}
	return open[0], nil
}

func (r *deliveryRepository) GetLastClosedByCourier(
	ctx context.Context, courierID string,
) (*delivery.Delivery, error) {
	closed, err := r.collect(func(d *delivery.Delivery) bool {
		return d.CourierID() == courierID && !d.IsOpen()
	})
	if err != nil {
		return nil, err
	}
	if len(closed) == 0 {
		return nil, errs.NewObjectNotFoundError("courierID", courierID)
	}

	last := closed[0]
	for _, d := range closed[1:] {
		if d.EndedAt().After(*last.EndedAt()) {
			last = d
		}
	}
	return last, nil
}

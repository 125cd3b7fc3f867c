package memory

import (
	"context"
	"sort"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

type courierRepository struct {
	uow *UnitOfWork
}

func cloneCourier(src *courier.Courier) (*courier.Courier, error) {
	return courier.RestoreCourier(
		src.ID(),
		src.Name(),
		src.Phone(),
		src.Email(),
		src.IsActive(),
		src.MaxDistanceKm(),
		src.Vehicle(),
		src.Location(),
		src.StartedWorkAt(),
	)
}

func (r *courierRepository) lookup(id string) (*courier.Courier, bool) {
	if _, deleted := r.uow.deletedCouriers[id]; deleted {
		return nil, false
	}
	if aggregate, ok := r.uow.stagedCouriers[id]; ok {
		return aggregate, true
	}
	aggregate, ok := r.uow.store.couriers[id]
	return aggregate, ok
}

func (r *courierRepository) collect(keep func(*courier.Courier) bool) ([]*courier.Courier, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	ids := make([]string, 0, len(r.uow.store.couriers)+len(r.uow.stagedCouriers))
	seen := make(map[string]struct{})
	for id := range r.uow.store.couriers {
		ids = append(ids, id)
		seen[id] = struct{}{}
	}
	for id := range r.uow.stagedCouriers {
		if _, ok := seen[id]; !ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var out []*courier.Courier
	for _, id := range ids {
		aggregate, ok := r.lookup(id)
		if !ok || !keep(aggregate) {
			continue
		}
		clone, err := cloneCourier(aggregate)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}
	return out, nil
}

func (r *courierRepository) Add(_ context.Context, aggregate *courier.Courier) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); ok {
		return errs.NewObjectAlreadyExistsError("courierID", aggregate.ID())
	}

	clone, err := cloneCourier(aggregate)
	if err != nil {
		return err
	}
	delete(r.uow.deletedCouriers, aggregate.ID())
	r.uow.stagedCouriers[aggregate.ID()] = clone
	return nil
}

func (r *courierRepository) Update(_ context.Context, aggregate *courier.Courier) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if _, ok := r.lookup(aggregate.ID()); !ok {
		return errs.NewObjectNotFoundError("courierID", aggregate.ID())
	}

	clone, err := cloneCourier(aggregate)
	if err != nil {
		return err
	}
	r.uow.stagedCouriers[aggregate.ID()] = clone
	return nil
}

func (r *courierRepository) Get(_ context.Context, id string) (*courier.Courier, error) {
	if !r.uow.active {
		return nil, ErrNoActiveTransaction
	}

	aggregate, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("courierID", id)
	}
	return cloneCourier(aggregate)
}

func (r *courierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	return r.collect(func(*courier.Courier) bool { return true })
}

func (r *courierRepository) GetAllActive(ctx context.Context) ([]*courier.Courier, error) {
	return r.collect(func(c *courier.Courier) bool { return c.IsActive() })
}

func (r *courierRepository) Delete(_ context.Context, id string) error {
	if !r.uow.active {
		return ErrNoActiveTransaction
	}
	if _, ok := r.lookup(id); !ok {
		return errs.NewObjectNotFoundError("courierID", id)
	}

	delete(r.uow.stagedCouriers, id)
	r.uow.deletedCouriers[id] = struct{}{}
	return nil
}

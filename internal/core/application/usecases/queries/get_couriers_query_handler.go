package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/pkg/errs"
)

// GetCouriersQueryHandler lists every courier with the derived status.
type GetCouriersQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetCouriersQueryHandler(uowFactory UoWFactory) GetCouriersQueryHandler {
	return GetCouriersQueryHandler{uowFactory: uowFactory}
}

func (h GetCouriersQueryHandler) Handle(
	ctx context.Context, query GetCouriersQuery,
) ([]CourierRow, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregates, err := uow.CourierRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	deliveryRepo := uow.DeliveryRepository()
	rows := make([]CourierRow, 0, len(aggregates))
	for _, aggregate := range aggregates {
		open, err := deliveryRepo.GetOpenByCourier(ctx, aggregate.ID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return nil, err
		}

		rows = append(rows, CourierRow{
			ID:            aggregate.ID(),
			Name:          aggregate.Name(),
			Phone:         aggregate.Phone(),
			Email:         aggregate.Email(),
			Vehicle:       aggregate.Vehicle(),
			Location:      aggregate.Location(),
			MaxDistanceKm: aggregate.MaxDistanceKm(),
			StartedWorkAt: aggregate.StartedWorkAt(),

			Status: courier.DeriveStatus(aggregate.IsActive(), open != nil),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

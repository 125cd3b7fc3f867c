package queries

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// GetDeliveryHistoryQueryHandler reads an order's delivery trail ordered by
// start time ascending. A courier deleted since then degrades to the Unknown
// placeholder instead of failing the whole read.
type GetDeliveryHistoryQueryHandler struct {
	uowFactory UoWFactory
}

func NewGetDeliveryHistoryQueryHandler(uowFactory UoWFactory) GetDeliveryHistoryQueryHandler {
	return GetDeliveryHistoryQueryHandler{uowFactory: uowFactory}
}

func (h GetDeliveryHistoryQueryHandler) Handle(
	ctx context.Context, query GetDeliveryHistoryQuery,
) ([]DeliveryRow, error) {
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

	// The order must exist even when it has no deliveries yet.
	if _, err := uow.OrderRepository().Get(ctx, query.OrderID()); err != nil {
		return nil, err
	}

	attempts, err := uow.DeliveryRepository().GetAllByOrder(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	courierRepo := uow.CourierRepository()
	names := make(map[string]string)

	rows := make([]DeliveryRow, 0, len(attempts))
	for _, attempt := range attempts {
		name, ok := names[attempt.CourierID()]
		if !ok {
			courierAggregate, err := courierRepo.Get(ctx, attempt.CourierID())
			switch {
			case errors.Is(err, errs.ErrObjectNotFound):
				name = UnknownCourierName
			case err != nil:
				return nil, err
			default:
				name = courierAggregate.Name()
			}
			names[attempt.CourierID()] = name
		}

		rows = append(rows, DeliveryRow{
			ID:          attempt.ID(),
			OrderID:     attempt.OrderID(),
			CourierID:   attempt.CourierID(),
			CourierName: name,
			Vehicle:     attempt.Vehicle(),
			DistanceKm:  attempt.DistanceKm(),
			StartedAt:   attempt.StartedAt(),
			Completion:  attempt.Completion(),
			EndedAt:     attempt.EndedAt(),
		})
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

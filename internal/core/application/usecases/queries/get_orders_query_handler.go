package queries

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// GetOrdersQueryHandler lists every order with its order status and schedule
// status derived at read time. The completion of the order's most recent
// delivery disambiguates why a finished order closed.
type GetOrdersQueryHandler struct {
	uowFactory UoWFactory
	clock      Clock
	params     ScheduleParams
}

// NewGetOrdersQueryHandler creates a handler for the order list query.
func NewGetOrdersQueryHandler(
	uowFactory UoWFactory, clock Clock, params ScheduleParams,
) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{
		uowFactory: uowFactory,
		clock:      clock,
		params:     params,
	}
}

// Handle returns all orders ordered the way the repository yields them.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]OrderRow, error) {
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

	aggregates, err := uow.OrderRepository().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]OrderRow, 0, len(aggregates))
	for _, aggregate := range aggregates {
		row, err := h.buildRow(ctx, uow.DeliveryRepository(), aggregate)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return rows, nil
}

func (h GetOrdersQueryHandler) buildRow(
	ctx context.Context, deliveryRepo ports.DeliveryRepository, aggregate *order.Order,
) (OrderRow, error) {
	var lastCompletion *delivery.Completion
	last, err := deliveryRepo.GetLastByOrder(ctx, aggregate.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return OrderRow{}, err
	}
	if last != nil {
		lastCompletion = last.Completion()
	}

	return OrderRow{
		ID:            aggregate.ID(),
		OrderType:     aggregate.OrderType(),
		Address:       aggregate.Address(),
		Location:      aggregate.Location(),
		CustomerName:  aggregate.CustomerName(),
		CustomerPhone: aggregate.CustomerPhone(),
		WeightKg:      aggregate.WeightKg(),
		VolumeLiters:  aggregate.VolumeLiters(),
		CreatedAt:     aggregate.CreatedAt(),
		CourierID:     aggregate.CourierID(),
		AssociatedAt:  aggregate.AssociatedAt(),
		PickedUpAt:    aggregate.PickedUpAt(),
		DeliveredAt:   aggregate.DeliveredAt(),

		Status: aggregate.StatusWith(lastCompletion),
		ScheduleStatus: aggregate.ScheduleStatusAt(
			h.clock.Now(), h.params.MaxDeliveryTime(), h.params.RiskRange()),
	}, nil
}

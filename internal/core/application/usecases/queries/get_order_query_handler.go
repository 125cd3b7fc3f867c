package queries

import "context"

// GetOrderQueryHandler reads a single order. Shares row derivation with the
// list query so the two can never disagree.
type GetOrderQueryHandler struct {
	uowFactory UoWFactory
	clock      Clock
	params     ScheduleParams
}

func NewGetOrderQueryHandler(
	uowFactory UoWFactory, clock Clock, params ScheduleParams,
) GetOrderQueryHandler {
	return GetOrderQueryHandler{
		uowFactory: uowFactory,
		clock:      clock,
		params:     params,
	}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderRow, error) {
	if err := query.Validate(); err != nil {
		return OrderRow{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return OrderRow{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderRow{}, err
	}

	lister := GetOrdersQueryHandler{uowFactory: h.uowFactory, clock: h.clock, params: h.params}
	row, err := lister.buildRow(ctx, uow.DeliveryRepository(), aggregate)
	if err != nil {
		return OrderRow{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return OrderRow{}, err
	}
	return row, nil
}

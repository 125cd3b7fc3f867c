package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// CreateOrder handles POST /api/v1/orders - creates a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderType, err := order.ParseType(req.OrderType)
	if err != nil {
		return fail(ctx, err)
	}

	location, err := kernel.NewLocation(req.Location.Latitude, req.Location.Longitude)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		orderType,
		req.Address,
		location,
		req.CustomerName,
		req.CustomerPhone,
		req.WeightKg,
		req.VolumeLiters,
	)
	if err != nil {
		return fail(ctx, err)
	}

	id, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedOrderResponse{ID: id})
}

// GetOrders handles GET /api/v1/orders - retrieves all orders with derived statuses.
func (s *Server) GetOrders(ctx echo.Context) error {
	rows, err := s.getOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetOrdersQuery())
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]OrderResponse, len(rows))
	for i, row := range rows {
		response[i] = toOrderResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves a single order.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(ctx, err)
	}

	row, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(row))
}

// GetDeliveryHistory handles GET /api/v1/orders/:id/history - retrieves the
// order's delivery attempts, oldest first.
func (s *Server) GetDeliveryHistory(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetDeliveryHistoryQuery(id)
	if err != nil {
		return fail(ctx, err)
	}

	rows, err := s.getDeliveryHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]DeliveryResponse, len(rows))
	for i, row := range rows {
		response[i] = toDeliveryResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// AssociateCourier handles POST /api/v1/orders/:id/associate - attaches a
// courier and opens a delivery attempt.
func (s *Server) AssociateCourier(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	var req AssociateCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssociateCourierCommand(id, req.CourierID)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.associateCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch - auto-assigns the
// free active courier with the shortest travel time.
func (s *Server) DispatchOrder(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDispatchOrderCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	courierID, err := s.dispatchOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DispatchedOrderResponse{CourierID: courierID})
}

// PickUpOrder handles POST /api/v1/orders/:id/pickup.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewPickUpOrderCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.pickUpOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewDeliverOrderCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.deliverOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RefuseOrder handles POST /api/v1/orders/:id/refuse - the customer turns
// the order down at the door.
func (s *Server) RefuseOrder(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewRefuseOrderCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.refuseOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel - reopens an in-flight
// order or closes the attempt on an open one.
func (s *Server) CancelOrder(ctx echo.Context) error {
	id, ok := orderID(ctx)
	if !ok {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return fail(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func orderID(ctx echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

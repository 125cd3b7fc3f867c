package queries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/config"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

type commandUoWFactory struct{ store *memory.Store }

func (f commandUoWFactory) Create() commands.UoW { return f.store.Create() }

type orderUoWFactory struct{ store *memory.Store }

func (f orderUoWFactory) Create() commands.OrderUoW { return f.store.Create() }

type courierUoWFactory struct{ store *memory.Store }

func (f courierUoWFactory) Create() commands.CourierUoW { return f.store.Create() }

type queryUoWFactory struct{ store *memory.Store }

func (f queryUoWFactory) Create() queries.UoW { return f.store.Create() }

type fixture struct {
	store *memory.Store
	cfg   *config.Store

	createOrder commands.CreateOrderCommandHandler
	associate   commands.AssociateCourierCommandHandler
	pickUp      commands.PickUpOrderCommandHandler
	deliver     commands.DeliverOrderCommandHandler

	getOrders   queries.GetOrdersQueryHandler
	getOrder    queries.GetOrderQueryHandler
	getHistory  queries.GetDeliveryHistoryQueryHandler
	getCouriers queries.GetCouriersQueryHandler
}

var startTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	cfg := config.NewStore(startTime)
	notifier := commands.NopNotifier{}

	return &fixture{
		store: store,
		cfg:   cfg,

		createOrder: commands.NewCreateOrderCommandHandler(orderUoWFactory{store}, cfg, notifier),
		associate:   commands.NewAssociateCourierCommandHandler(commandUoWFactory{store}, cfg, notifier),
		pickUp:      commands.NewPickUpOrderCommandHandler(orderUoWFactory{store}, cfg, notifier),
		deliver:     commands.NewDeliverOrderCommandHandler(commandUoWFactory{store}, cfg, notifier),

		getOrders:   queries.NewGetOrdersQueryHandler(queryUoWFactory{store}, cfg, cfg),
		getOrder:    queries.NewGetOrderQueryHandler(queryUoWFactory{store}, cfg, cfg),
		getHistory:  queries.NewGetDeliveryHistoryQueryHandler(queryUoWFactory{store}),
		getCouriers: queries.NewGetCouriersQueryHandler(queryUoWFactory{store}),
	}
}

func (f *fixture) addCourier(t *testing.T, id string) {
	t.Helper()
	ctx := t.Context()

	location, err := kernel.NewLocation(48.85, 2.34)
	require.NoError(t, err)
	cmd, err := commands.NewCreateCourierCommand(
		id, "Kim", "+44790000000", "kim@example.com", kernel.VehicleBicycle, location, nil)
	require.NoError(t, err)

	h := commands.NewCreateCourierCommandHandler(
		courierUoWFactory{f.store}, f.cfg, commands.NopNotifier{})
	require.NoError(t, h.Handle(ctx, cmd))
}

func (f *fixture) addOrder(t *testing.T, orderType order.Type) int64 {
	t.Helper()
	ctx := t.Context()

	location, err := kernel.NewLocation(48.86, 2.35)
	require.NoError(t, err)
	cmd, err := commands.NewCreateOrderCommand(
		orderType, "12 Rivoli St", location, "Ada", "+33123456789", 1.5, 4)
	require.NoError(t, err)

	id, err := f.createOrder.Handle(ctx, cmd)
	require.NoError(t, err)
	return id
}

func (f *fixture) forward(t *testing.T, d time.Duration) {
	t.Helper()
	_, err := f.cfg.Forward(d)
	require.NoError(t, err)
}

// Walks one order through the happy path on the virtual clock and checks the
// derived read model at each step.
func Test_OrderLifecycle_EndToEnd(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	f.addCourier(t, "c-1")

	orderID := f.addOrder(t, order.Groceries)

	row, err := f.getOrder.Handle(ctx, mustGetOrderQuery(t, orderID))
	require.NoError(t, err)
	assert.Equal(t, order.Open, row.Status)
	assert.Equal(t, order.OnTime, row.ScheduleStatus)

	// T0+5m: courier takes the order.
	f.forward(t, 5*time.Minute)
	cmd, err := commands.NewAssociateCourierCommand(orderID, "c-1")
	require.NoError(t, err)
	require.NoError(t, f.associate.Handle(ctx, cmd))

	row, err = f.getOrder.Handle(ctx, mustGetOrderQuery(t, orderID))
	require.NoError(t, err)
	assert.Equal(t, order.InProgress, row.Status)
	require.NotNil(t, row.CourierID)
	assert.Equal(t, "c-1", *row.CourierID)
	assert.Equal(t, startTime.Add(5*time.Minute), *row.AssociatedAt)

	couriers, err := f.getCouriers.Handle(ctx, queries.NewGetCouriersQuery())
	require.NoError(t, err)
	require.Len(t, couriers, 1)
	assert.Equal(t, courier.OnRoute, couriers[0].Status)

	// T0+10m: pickup.
	f.forward(t, 5*time.Minute)
	pickUpCmd, err := commands.NewPickUpOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, f.pickUp.Handle(ctx, pickUpCmd))

	// T0+40m: delivered.
	f.forward(t, 30*time.Minute)
	deliverCmd, err := commands.NewDeliverOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, f.deliver.Handle(ctx, deliverCmd))

	row, err = f.getOrder.Handle(ctx, mustGetOrderQuery(t, orderID))
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, row.Status)
	// 40 minutes elapsed against a 2h commitment with 30m risk range.
	assert.Equal(t, order.OnTime, row.ScheduleStatus)
	assert.Equal(t, startTime.Add(40*time.Minute), *row.DeliveredAt)

	history, err := f.getHistory.Handle(ctx, mustHistoryQuery(t, orderID))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, delivery.Completed, *history[0].Completion)
	assert.Equal(t, startTime.Add(40*time.Minute), *history[0].EndedAt)
	assert.Equal(t, "Kim", history[0].CourierName)

	couriers, err = f.getCouriers.Handle(ctx, queries.NewGetCouriersQuery())
	require.NoError(t, err)
	assert.Equal(t, courier.Available, couriers[0].Status)
}

func Test_GetOrders_DerivesStatusFromLastCompletion(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	f.addCourier(t, "c-1")

	orderID := f.addOrder(t, order.RestaurantFood)

	cmd, err := commands.NewAssociateCourierCommand(orderID, "c-1")
	require.NoError(t, err)
	require.NoError(t, f.associate.Handle(ctx, cmd))
	pickUpCmd, err := commands.NewPickUpOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, f.pickUp.Handle(ctx, pickUpCmd))

	refuseCmd, err := commands.NewRefuseOrderCommand(orderID)
	require.NoError(t, err)
	refuse := commands.NewRefuseOrderCommandHandler(
		commandUoWFactory{f.store}, f.cfg, commands.NopNotifier{})
	require.NoError(t, refuse.Handle(ctx, refuseCmd))

	rows, err := f.getOrders.Handle(ctx, queries.NewGetOrdersQuery())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// Restaurant food closes permanently; the refusal shows through the
	// last delivery's completion.
	assert.Equal(t, order.Refused, rows[0].Status)
}

func Test_GetDeliveryHistory_UnknownCourierPlaceholder(t *testing.T) {
	ctx := t.Context()
	f := newFixture(t)
	f.addCourier(t, "c-1")

	orderID := f.addOrder(t, order.Groceries)

	cmd, err := commands.NewAssociateCourierCommand(orderID, "c-1")
	require.NoError(t, err)
	require.NoError(t, f.associate.Handle(ctx, cmd))
	pickUpCmd, err := commands.NewPickUpOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, f.pickUp.Handle(ctx, pickUpCmd))
	deliverCmd, err := commands.NewDeliverOrderCommand(orderID)
	require.NoError(t, err)
	require.NoError(t, f.deliver.Handle(ctx, deliverCmd))

	// Deactivate and delete the courier; history must still read.
	statusCmd, err := commands.NewSetCourierStatusCommand("c-1", courier.Inactive)
	require.NoError(t, err)
	setStatus := commands.NewSetCourierStatusCommandHandler(
		courierUoWFactory{f.store}, f.cfg, commands.NopNotifier{})
	require.NoError(t, setStatus.Handle(ctx, statusCmd))

	deleteCmd, err := commands.NewDeleteCourierCommand("c-1")
	require.NoError(t, err)
	deleteHandler := commands.NewDeleteCourierCommandHandler(
		courierUoWFactory{f.store}, commands.NopNotifier{})
	require.NoError(t, deleteHandler.Handle(ctx, deleteCmd))

	history, err := f.getHistory.Handle(ctx, mustHistoryQuery(t, orderID))
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, queries.UnknownCourierName, history[0].CourierName)
}

func mustGetOrderQuery(t *testing.T, orderID int64) queries.GetOrderQuery {
	t.Helper()
	q, err := queries.NewGetOrderQuery(orderID)
	require.NoError(t, err)
	return q
}

func mustHistoryQuery(t *testing.T, orderID int64) queries.GetDeliveryHistoryQuery {
	t.Helper()
	q, err := queries.NewGetDeliveryHistoryQuery(orderID)
	require.NoError(t, err)
	return q
}

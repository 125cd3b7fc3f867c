package commands_test

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// stubSpeeds resolves every vehicle to a fixed speed.
type stubSpeeds struct{}

func (stubSpeeds) SpeedKmh(kernel.Vehicle) float64 { return 15 }
func (stubSpeeds) FallbackSpeedKmh() float64 { return 50 }

func testCourierAt(t *testing.T, id string, lat, lng float64) *courier.Courier {
	t.Helper()
	aggregate, err := courier.NewCourier(
		id, "Kim", "+44790000000", "kim@example.com",
		kernel.VehicleBicycle, testLocation(t, lat, lng), baseTime,
	)
	require.NoError(t, err)
	return aggregate
}

func TestDispatchOrderCommandHandler_Handle_PicksNearestFreeCourier(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDispatchOrderCommand(1)
	require.NoError(t, err)

	aggregate := testOrder(t, 1, order.Groceries)
	near := testCourierAt(t, "c-near", 48.861, 2.351)
	far := testCourierAt(t, "c-far", 48.9, 2.4)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	orderRepo.On("Get", mock.Anything, int64(1)).Return(aggregate, nil).Once()
	courierRepo.On("GetAllActive", mock.Anything).
		Return([]*courier.Courier{far, near}, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-far").
		Return([]*order.Order{}, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-near").
		Return([]*order.Order{}, nil).Once()
	deliveryRepo.On("NextID", mock.Anything).Return(int64(11), nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewDispatchOrderCommandHandler(
		factory, services.NewDispatcher(stubSpeeds{}), stubClock{now: baseTime}, notifier)

	chosen, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, "c-near", chosen)
	require.NotNil(t, aggregate.CourierID())
	require.Equal(t, "c-near", *aggregate.CourierID())
	require.Equal(t, []int64{1}, notifier.orders)
	require.Equal(t, []string{"c-near"}, notifier.couriers)
	require.Equal(t, []int64{11}, notifier.deliveries)
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	deliveryRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_SkipsBusyCouriers(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDispatchOrderCommand(1)
	require.NoError(t, err)

	aggregate := testOrder(t, 1, order.Groceries)
	busy := testCourierAt(t, "c-busy", 48.861, 2.351)
	free := testCourierAt(t, "c-free", 48.9, 2.4)
	busyOrder := testOrder(t, 2, order.Groceries)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	orderRepo.On("Get", mock.Anything, int64(1)).Return(aggregate, nil).Once()
	courierRepo.On("GetAllActive", mock.Anything).
		Return([]*courier.Courier{busy, free}, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-busy").
		Return([]*order.Order{busyOrder}, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-free").
		Return([]*order.Order{}, nil).Once()
	deliveryRepo.On("NextID", mock.Anything).Return(int64(12), nil).Once()
	orderRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	deliveryRepo.On("Add", mock.Anything, mock.AnythingOfType("*delivery.Delivery")).
		Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewDispatchOrderCommandHandler(
		factory, services.NewDispatcher(stubSpeeds{}), stubClock{now: baseTime}, notifier)

	chosen, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, "c-free", chosen)
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_NoCourierAvailable(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDispatchOrderCommand(1)
	require.NoError(t, err)

	aggregate := testOrder(t, 1, order.Groceries)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	deliveryRepo := new(MockDeliveryRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("DeliveryRepository").Return(deliveryRepo).Once()
	orderRepo.On("Get", mock.Anything, int64(1)).Return(aggregate, nil).Once()
	courierRepo.On("GetAllActive", mock.Anything).
		Return([]*courier.Courier{}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewDispatchOrderCommandHandler(
		factory, services.NewDispatcher(stubSpeeds{}), stubClock{now: baseTime}, notifier)

	chosen, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Empty(t, chosen)
	require.Nil(t, aggregate.CourierID())
	require.Empty(t, notifier.orders)
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestDispatchOrderCommandHandler_Handle_UnconstructedCommand(t *testing.T) {
	factory := new(MockUoWFactory)
	notifier := &recordingNotifier{}
	h := commands.NewDispatchOrderCommandHandler(
		factory, services.NewDispatcher(stubSpeeds{}), stubClock{now: baseTime}, notifier)

	_, err := h.Handle(t.Context(), commands.DispatchOrderCommand{})

	require.ErrorIs(t, err, commands.ErrDispatchOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

func TestNewSetCourierStatusCommand_RejectsOnRoute(t *testing.T) {
	_, err := commands.NewSetCourierStatusCommand("c-1", courier.OnRoute)
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestSetCourierStatusCommandHandler_Handle_Deactivate(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetCourierStatusCommand("c-1", courier.Inactive)
	require.NoError(t, err)

	aggregate := testCourier(t, "c-1")

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("Get", mock.Anything, "c-1").Return(aggregate, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-1").
		Return([]*order.Order{}, nil).Once()
	courierRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewSetCourierStatusCommandHandler(factory, stubClock{now: baseTime}, notifier)

	require.NoError(t, h.Handle(ctx, cmd))
	require.False(t, aggregate.IsActive())
	require.Equal(t, []string{"c-1"}, notifier.couriers)
}

func TestSetCourierStatusCommandHandler_Handle_DeactivateWithUnfinishedOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetCourierStatusCommand("c-1", courier.Inactive)
	require.NoError(t, err)

	aggregate := testCourier(t, "c-1")
	busyWith := testOrder(t, 9, order.Retail)
	require.NoError(t, busyWith.Associate("c-1", baseTime))

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("Get", mock.Anything, "c-1").Return(aggregate, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-1").
		Return([]*order.Order{busyWith}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetCourierStatusCommandHandler(
		factory, stubClock{now: baseTime}, commands.NopNotifier{})

	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
	require.True(t, aggregate.IsActive())
}

func TestSetCourierStatusCommandHandler_Handle_Reactivate(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewSetCourierStatusCommand("c-1", courier.Available)
	require.NoError(t, err)

	aggregate := testCourier(t, "c-1")
	aggregate.Deactivate()

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(new(MockOrderRepository)).Once()
	courierRepo.On("Get", mock.Anything, "c-1").Return(aggregate, nil).Once()
	courierRepo.On("Update", mock.Anything, aggregate).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	now := baseTime.Add(24 * time.Hour)
	h := commands.NewSetCourierStatusCommandHandler(
		factory, stubClock{now: now}, commands.NopNotifier{})

	require.NoError(t, h.Handle(ctx, cmd))
	require.True(t, aggregate.IsActive())
	// Reactivation starts a fresh shift for the inactivity sweep.
	require.Equal(t, now, aggregate.StartedWorkAt())
}

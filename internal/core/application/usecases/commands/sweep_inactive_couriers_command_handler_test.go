package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
)

type stubInactivityParams struct{ threshold time.Duration }

func (p stubInactivityParams) InactivityRange() time.Duration { return p.threshold }

func TestSweepInactiveCouriersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepInactiveCouriersCommand()

	// Three active couriers: one overdue and idle, one overdue but busy,
	// one still within the shift window.
	overdue := testCourier(t, "c-overdue")
	busy := testCourier(t, "c-busy")
	fresh := testCourier(t, "c-fresh")
	require.NoError(t, fresh.Activate(baseTime.Add(7*time.Hour)))

	busyWith := testOrder(t, 9, order.Retail)
	require.NoError(t, busyWith.Associate("c-busy", baseTime))

	courierRepo := new(MockCourierRepository)
	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	courierRepo.On("GetAllActive", mock.Anything).
		Return([]*courier.Courier{overdue, busy, fresh}, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-overdue").
		Return([]*order.Order{}, nil).Once()
	orderRepo.On("GetAllUnfinishedByCourier", mock.Anything, "c-busy").
		Return([]*order.Order{busyWith}, nil).Once()
	courierRepo.On("Update", mock.Anything, overdue).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	now := baseTime.Add(9 * time.Hour)
	h := commands.NewSweepInactiveCouriersCommandHandler(
		factory, stubClock{now: now}, stubInactivityParams{threshold: 8 * time.Hour}, notifier)

	swept, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, []string{"c-overdue"}, swept)
	require.False(t, overdue.IsActive())
	require.True(t, busy.IsActive())
	require.True(t, fresh.IsActive())
	require.Equal(t, []string{"c-overdue"}, notifier.couriers)
	courierRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestSweepInactiveCouriersCommandHandler_Handle_NothingToSweep(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewSweepInactiveCouriersCommand()

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("CourierRepository").Return(courierRepo).Once()
	uow.On("OrderRepository").Return(new(MockOrderRepository)).Once()
	courierRepo.On("GetAllActive", mock.Anything).Return([]*courier.Courier{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewSweepInactiveCouriersCommandHandler(
		factory, stubClock{now: baseTime}, stubInactivityParams{threshold: 8 * time.Hour}, notifier)

	swept, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, swept)
	require.Empty(t, notifier.couriers)
}

package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
)

func newCreateOrderCommand(t *testing.T) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		order.Groceries, "12 Rivoli St", testLocation(t, 48.86, 2.35),
		"Ada", "+33123456789", 1.5, 4,
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("NextID", mock.Anything).Return(int64(7), nil).Once(),
		repo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewCreateOrderCommandHandler(factory, stubClock{now: baseTime}, notifier)

	id, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
	require.Equal(t, []int64{7}, notifier.orders)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CreateOrderCommand{} // not constructed properly

	factory := new(MockOrderUoWFactory)
	h := commands.NewCreateOrderCommandHandler(factory, stubClock{now: baseTime}, commands.NopNotifier{})

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCreateOrderCommandHandler(factory, stubClock{now: baseTime}, commands.NopNotifier{})

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCreateOrderCommandHandler_Handle_NoNotificationOnAddError(t *testing.T) {
	ctx := t.Context()
	cmd := newCreateOrderCommand(t)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("NextID", mock.Anything).Return(int64(7), nil).Once(),
		repo.On("Add", mock.Anything, mock.Anything).Return(errors.New("add error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := &recordingNotifier{}
	h := commands.NewCreateOrderCommandHandler(factory, stubClock{now: baseTime}, notifier)

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	require.Empty(t, notifier.orders)
}

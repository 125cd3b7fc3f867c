package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return location
}

func newOrder(t *testing.T, id int64) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		id, order.Groceries, "12 Rivoli St", testLocation(t, 48.86, 2.35),
		"Ada", "+33123456789", 1.5, 4, baseTime,
	)
	require.NoError(t, err)
	return aggregate
}

func newCourier(t *testing.T, id string) *courier.Courier {
	t.Helper()
	aggregate, err := courier.NewCourier(
		id, "Kim", "+44790000000", "kim@example.com",
		kernel.VehicleBicycle, testLocation(t, 48.85, 2.34), baseTime,
	)
	require.NoError(t, err)
	return aggregate
}

func Test_UnitOfWork_CommitMakesChangesVisible(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, 1)))
	require.NoError(t, uow.Commit(ctx))

	reader := store.Create()
	require.NoError(t, reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()

	got, err := reader.OrderRepository().Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID())
}

func Test_UnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, 1)))
	require.NoError(t, uow.Rollback(ctx))

	reader := store.Create()
	require.NoError(t, reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()

	_, err := reader.OrderRepository().Get(ctx, 1)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_UnitOfWork_RollbackAfterCommitIsNoop(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, 1)))
	require.NoError(t, uow.Commit(ctx))
	require.NoError(t, uow.Rollback(ctx))

	reader := store.Create()
	require.NoError(t, reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()

	_, err := reader.OrderRepository().Get(ctx, 1)
	assert.NoError(t, err)
}

func Test_UnitOfWork_StagedChangesVisibleWithinScope(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.OrderRepository()
	require.NoError(t, repo.Add(ctx, newOrder(t, 1)))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func Test_UnitOfWork_ClonesIsolateCallerMutations(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, 1)))
	require.NoError(t, uow.Commit(ctx))

	// Mutate a fetched copy without calling Update.
	mutator := store.Create()
	require.NoError(t, mutator.Begin(ctx))
	fetched, err := mutator.OrderRepository().Get(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, fetched.Associate("c-1", baseTime))
	require.NoError(t, mutator.Rollback(ctx))

	reader := store.Create()
	require.NoError(t, reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()

	got, err := reader.OrderRepository().Get(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got.CourierID(), "uncommitted mutation must not leak into the store")
}

func Test_UnitOfWork_SerializesConcurrentScopes(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newOrder(t, 1)))

	released := make(chan struct{})
	go func() {
		second := store.Create()
		_ = second.Begin(ctx) // blocks until the first scope finishes
		_ = second.Rollback(ctx)
		close(released)
	}()

	select {
	case <-released:
		t.Fatal("second scope ran while the first held the lock")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, uow.Commit(ctx))

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("second scope never acquired the lock")
	}
}

func Test_CourierRepository_DeleteIsTransactional(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.CourierRepository().Add(ctx, newCourier(t, "c-1")))
	require.NoError(t, uow.Commit(ctx))

	// Rolled back delete leaves the courier in place.
	deleter := store.Create()
	require.NoError(t, deleter.Begin(ctx))
	require.NoError(t, deleter.CourierRepository().Delete(ctx, "c-1"))

	_, err := deleter.CourierRepository().Get(ctx, "c-1")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound, "delete must be visible within its own scope")
	require.NoError(t, deleter.Rollback(ctx))

	reader := store.Create()
	require.NoError(t, reader.Begin(ctx))
	_, err = reader.CourierRepository().Get(ctx, "c-1")
	assert.NoError(t, err)
	require.NoError(t, reader.Rollback(ctx))

	// Committed delete removes it.
	deleter = store.Create()
	require.NoError(t, deleter.Begin(ctx))
	require.NoError(t, deleter.CourierRepository().Delete(ctx, "c-1"))
	require.NoError(t, deleter.Commit(ctx))

	reader = store.Create()
	require.NoError(t, reader.Begin(ctx))
	defer func() { _ = reader.Rollback(ctx) }()
	_, err = reader.CourierRepository().Get(ctx, "c-1")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func Test_OrderRepository_NextIDIsMonotonic(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()

	uow := store.Create()
	require.NoError(t, uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.OrderRepository()
	first, err := repo.NextID(ctx)
	require.NoError(t, err)
	second, err := repo.NextID(ctx)
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func testLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	location, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return location
}

func testOrder(t *testing.T, id int64, orderType order.Type) *order.Order {
	t.Helper()
	aggregate, err := order.NewOrder(
		id, orderType, "12 Rivoli St", testLocation(t, 48.86, 2.35),
		"Ada", "+33123456789", 1.5, 4, baseTime,
	)
	require.NoError(t, err)
	return aggregate
}

func testCourier(t *testing.T, id string) *courier.Courier {
	t.Helper()
	aggregate, err := courier.NewCourier(
		id, "Kim", "+44790000000", "kim@example.com",
		kernel.VehicleBicycle, testLocation(t, 48.85, 2.34), baseTime,
	)
	require.NoError(t, err)
	return aggregate
}

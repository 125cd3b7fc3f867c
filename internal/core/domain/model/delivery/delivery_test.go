package delivery_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNewDelivery(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		d, err := delivery.NewDelivery(1, 10, "C-1", kernel.VehicleBicycle, 3.5, start)

		require.NoError(t, err)
		assert.Equal(t, int64(1), d.ID())
		assert.Equal(t, int64(10), d.OrderID())
		assert.Equal(t, "C-1", d.CourierID())
		assert.Equal(t, kernel.VehicleBicycle, d.Vehicle())
		assert.InDelta(t, 3.5, d.DistanceKm(), 1e-9)
		assert.Equal(t, start, d.StartedAt())
		assert.True(t, d.IsOpen())
		assert.Nil(t, d.Completion())
		assert.Nil(t, d.EndedAt())
	})

	t.Run("invalid_inputs", func(t *testing.T) {
		cases := []struct {
			name string
			fn   func() (*delivery.Delivery, error)
		}{
			{"zero_id", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(0, 10, "C-1", kernel.VehicleBicycle, 1, start)
			}},
			{"zero_order", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(1, 0, "C-1", kernel.VehicleBicycle, 1, start)
			}},
			{"empty_courier", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(1, 10, "", kernel.VehicleBicycle, 1, start)
			}},
			{"unknown_vehicle", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(1, 10, "C-1", kernel.VehicleUnknown, 1, start)
			}},
			{"negative_distance", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(1, 10, "C-1", kernel.VehicleBicycle, -1, start)
			}},
			{"zero_start", func() (*delivery.Delivery, error) {
				return delivery.NewDelivery(1, 10, "C-1", kernel.VehicleBicycle, 1, time.Time{})
			}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := tc.fn()
				require.Error(t, err)
			})
		}
	})
}

func TestDelivery_Close(t *testing.T) {
	t.Run("sets_completion_and_end_time_together", func(t *testing.T) {
		d, _ := delivery.NewDelivery(1, 10, "C-1", kernel.VehicleCar, 2, start)
		end := start.Add(40 * time.Minute)

		require.NoError(t, d.Close(delivery.Completed, end))

		assert.False(t, d.IsOpen())
		require.NotNil(t, d.Completion())
		assert.Equal(t, delivery.Completed, *d.Completion())
		require.NotNil(t, d.EndedAt())
		assert.Equal(t, end, *d.EndedAt())

		dur, ok := d.Duration()
		assert.True(t, ok)
		assert.Equal(t, 40*time.Minute, dur)
	})

	t.Run("second_close_fails", func(t *testing.T) {
		d, _ := delivery.NewDelivery(1, 10, "C-1", kernel.VehicleCar, 2, start)
		require.NoError(t, d.Close(delivery.CustomerRefused, start.Add(time.Hour)))

		err := d.Close(delivery.Completed, start.Add(2*time.Hour))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, delivery.CustomerRefused, *d.Completion())
	})

	t.Run("rejects_end_before_start", func(t *testing.T) {
		d, _ := delivery.NewDelivery(1, 10, "C-1", kernel.VehicleCar, 2, start)

		err := d.Close(delivery.Completed, start.Add(-time.Minute))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, d.IsOpen())
	})

	t.Run("rejects_invalid_completion", func(t *testing.T) {
		d, _ := delivery.NewDelivery(1, 10, "C-1", kernel.VehicleCar, 2, start)

		err := d.Close(delivery.CompletionUnknown, start.Add(time.Minute))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("open_delivery_has_no_duration", func(t *testing.T) {
		d, _ := delivery.NewDelivery(1, 10, "C-1", kernel.VehicleCar, 2, start)

		_, ok := d.Duration()
		assert.False(t, ok)
	})
}

func TestRestoreDelivery(t *testing.T) {
	t.Run("restores_closed_delivery", func(t *testing.T) {
		completion := delivery.Completed
		end := start.Add(30 * time.Minute)

		d, err := delivery.RestoreDelivery(1, 10, "C-1", kernel.VehicleScooter, 4, start, &completion, &end)

		require.NoError(t, err)
		assert.False(t, d.IsOpen())
		assert.Equal(t, delivery.Completed, *d.Completion())
	})

	t.Run("restores_open_delivery", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(1, 10, "C-1", kernel.VehicleScooter, 4, start, nil, nil)

		require.NoError(t, err)
		assert.True(t, d.IsOpen())
	})

	t.Run("rejects_completion_without_end_time", func(t *testing.T) {
		completion := delivery.Completed

		_, err := delivery.RestoreDelivery(1, 10, "C-1", kernel.VehicleScooter, 4, start, &completion, nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_end_time_without_completion", func(t *testing.T) {
		end := start.Add(time.Minute)

		_, err := delivery.RestoreDelivery(1, 10, "C-1", kernel.VehicleScooter, 4, start, nil, &end)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDelivery_Validate(t *testing.T) {
	t.Run("nil_and_zero_value_fail", func(t *testing.T) {
		var d *delivery.Delivery
		require.Error(t, d.Validate())
		require.Error(t, (&delivery.Delivery{}).Validate())
	})
}

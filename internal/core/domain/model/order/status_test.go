package order_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveStatus(t *testing.T) {
	cid := "C-1"
	at := t0.Add(5 * time.Minute)
	done := t0.Add(40 * time.Minute)
	refused := delivery.CustomerRefused
	cancelled := delivery.Cancelled
	completed := delivery.Completed

	cases := []struct {
		name           string
		courierID      *string
		associatedAt   *time.Time
		pickedUpAt     *time.Time
		deliveredAt    *time.Time
		lastCompletion *delivery.Completion
		want           order.Status
	}{
		{"no_fields_is_open", nil, nil, nil, nil, nil, order.Open},
		{"open_after_reset_with_refused_history", nil, nil, nil, nil, &refused, order.Open},
		{"open_after_reset_with_cancelled_history", nil, nil, nil, nil, &cancelled, order.Open},
		{"associated_is_in_progress", &cid, &at, nil, nil, nil, order.InProgress},
		{"picked_up_is_in_progress", &cid, &at, &at, nil, nil, order.InProgress},
		{"delivered_with_completed", &cid, &at, &at, &done, &completed, order.Delivered},
		{"delivered_without_history", &cid, &at, &at, &done, nil, order.Delivered},
		{"closed_with_refusal_is_refused", &cid, &at, &at, &done, &refused, order.Refused},
		{"closed_with_cancellation_is_canceled", &cid, &at, &at, &done, &cancelled, order.Canceled},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := order.DeriveStatus(tc.courierID, tc.associatedAt, tc.pickedUpAt, tc.deliveredAt, tc.lastCompletion)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeriveStatus_IsIdempotent(t *testing.T) {
	// Status is a pure function of its inputs: recomputing without mutation
	// yields the same value every time.
	o := newTestOrder(t, order.Groceries)
	require.NoError(t, o.Associate("C-1", t0))

	first := o.StatusWith(nil)
	for range 5 {
		assert.Equal(t, first, o.StatusWith(nil))
	}
	assert.Equal(t, order.InProgress, first)
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Open", order.Open.String())
	assert.Equal(t, "InProgress", order.InProgress.String())
	assert.Equal(t, "Delivered", order.Delivered.String())
	assert.Equal(t, "Refused", order.Refused.String())
	assert.Equal(t, "Canceled", order.Canceled.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

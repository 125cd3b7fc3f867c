package notify

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBus() *Bus {
	return NewBus(slog.Default())
}

func Test_Bus_ListAndItemObservers(t *testing.T) {
	t.Run("item_change_fires_item_and_list_observers", func(t *testing.T) {
		bus := newTestBus()

		var itemID int64
		listFired := 0
		bus.SubscribeOrder(42, func(id int64) { itemID = id })
		bus.SubscribeOrders(func() { listFired++ })

		bus.NotifyOrderChanged(42)

		assert.Equal(t, int64(42), itemID)
		assert.Equal(t, 1, listFired)
	})

	t.Run("item_observer_only_sees_its_own_id", func(t *testing.T) {
		bus := newTestBus()

		fired := 0
		bus.SubscribeOrder(1, func(int64) { fired++ })

		bus.NotifyOrderChanged(2)

		assert.Zero(t, fired)
	})

	t.Run("unsubscribe_stops_delivery", func(t *testing.T) {
		bus := newTestBus()

		fired := 0
		token := bus.SubscribeCouriers(func() { fired++ })

		bus.NotifyCourierChanged("c-1")
		bus.UnsubscribeCouriers(token)
		bus.NotifyCourierChanged("c-1")

		assert.Equal(t, 1, fired)
	})

	t.Run("string_keyed_courier_topic", func(t *testing.T) {
		bus := newTestBus()

		var seen string
		bus.SubscribeCourier("c-7", func(id string) { seen = id })

		bus.NotifyCourierChanged("c-7")

		assert.Equal(t, "c-7", seen)
	})
}

func Test_Bus_PanicIsolation(t *testing.T) {
	t.Run("panicking_observer_does_not_block_others", func(t *testing.T) {
		bus := newTestBus()

		bus.SubscribeDeliveries(func() { panic("observer bug") })
		survived := 0
		bus.SubscribeDeliveries(func() { survived++ })

		assert.NotPanics(t, func() {
			bus.NotifyDeliveryChanged(1)
		})
		assert.Equal(t, 1, survived)
	})
}

func Test_Bus_ConfigAndClock(t *testing.T) {
	t.Run("config_observers", func(t *testing.T) {
		bus := newTestBus()

		fired := 0
		token := bus.SubscribeConfig(func() { fired++ })

		bus.NotifyConfigChanged()
		bus.UnsubscribeConfig(token)
		bus.NotifyConfigChanged()

		assert.Equal(t, 1, fired)
	})

	t.Run("clock_observers_receive_new_time", func(t *testing.T) {
		bus := newTestBus()

		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		var seen time.Time
		bus.SubscribeClock(func(at time.Time) { seen = at })

		bus.NotifyClockChanged(now)

		assert.Equal(t, now, seen)
	})
}

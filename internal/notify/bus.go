package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Token identifies a single subscription for later removal.
type Token = uuid.UUID

type itemSub[K comparable] struct {
	key K
	fn  func(K)
}

// topic holds list observers and per-key item observers for one entity kind.
type topic[K comparable] struct {
	mu   sync.RWMutex
	list map[Token]func()
	item map[Token]itemSub[K]
}

func newTopic[K comparable]() *topic[K] {
	return &topic[K]{
		list: make(map[Token]func()),
		item: make(map[Token]itemSub[K]),
	}
}

func (t *topic[K]) subscribeList(fn func()) Token {
	token := uuid.New()
	t.mu.Lock()
	t.list[token] = fn
	t.mu.Unlock()
	return token
}

func (t *topic[K]) subscribeItem(key K, fn func(K)) Token {
	token := uuid.New()
	t.mu.Lock()
	t.item[token] = itemSub[K]{key: key, fn: fn}
	t.mu.Unlock()
	return token
}

func (t *topic[K]) unsubscribe(token Token) {
	t.mu.Lock()
	delete(t.list, token)
	delete(t.item, token)
	t.mu.Unlock()
}

func (t *topic[K]) snapshotList() []func() {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fns := make([]func(), 0, len(t.list))
	for _, fn := range t.list {
		fns = append(fns, fn)
	}
	return fns
}

func (t *topic[K]) snapshotItem(key K) []func(K) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var fns []func(K)
	for _, sub := range t.item {
		if sub.key == key {
			fns = append(fns, sub.fn)
		}
	}
	return fns
}

// Bus routes change notifications for orders, couriers, deliveries and
// config. Observers run on the notifying goroutine after the mutation has
// committed, so state read from inside an observer is post-mutation truth.
type Bus struct {
	log *slog.Logger

	orders     *topic[int64]
	couriers   *topic[string]
	deliveries *topic[int64]

	mu         sync.RWMutex
	configSubs map[Token]func()
	clockSubs  map[Token]func(time.Time)
}

func NewBus(log *slog.Logger) *Bus {
	return &Bus{
		log:        log.With("component", "notify"),
		orders:     newTopic[int64](),
		couriers:   newTopic[string](),
		deliveries: newTopic[int64](),
		configSubs: make(map[Token]func()),
		clockSubs:  make(map[Token]func(time.Time)),
	}
}

func (b *Bus) SubscribeOrders(fn func()) Token { return b.orders.subscribeList(fn) }
func (b *Bus) SubscribeOrder(id int64, fn func(int64)) Token {
	return b.orders.subscribeItem(id, fn)
}
func (b *Bus) UnsubscribeOrders(token Token) { b.orders.unsubscribe(token) }

func (b *Bus) SubscribeCouriers(fn func()) Token { return b.couriers.subscribeList(fn) }
func (b *Bus) SubscribeCourier(id string, fn func(string)) Token {
	return b.couriers.subscribeItem(id, fn)
}
func (b *Bus) UnsubscribeCouriers(token Token) { b.couriers.unsubscribe(token) }

func (b *Bus) SubscribeDeliveries(fn func()) Token { return b.deliveries.subscribeList(fn) }
func (b *Bus) SubscribeDelivery(id int64, fn func(int64)) Token {
	return b.deliveries.subscribeItem(id, fn)
}
func (b *Bus) UnsubscribeDeliveries(token Token) { b.deliveries.unsubscribe(token) }

// SubscribeConfig registers an observer for parameter changes. Observers
// re-read the store; no payload is carried.
func (b *Bus) SubscribeConfig(fn func()) Token {
	token := uuid.New()
	b.mu.Lock()
	b.configSubs[token] = fn
	b.mu.Unlock()
	return token
}

func (b *Bus) UnsubscribeConfig(token Token) {
	b.mu.Lock()
	delete(b.configSubs, token)
	b.mu.Unlock()
}

// SubscribeClock registers an observer for virtual clock advances.
func (b *Bus) SubscribeClock(fn func(time.Time)) Token {
	token := uuid.New()
	b.mu.Lock()
	b.clockSubs[token] = fn
	b.mu.Unlock()
	return token
}

func (b *Bus) UnsubscribeClock(token Token) {
	b.mu.Lock()
	delete(b.clockSubs, token)
	b.mu.Unlock()
}

// NotifyOrderChanged fires the order's item observers and the orders list
// observers.
func (b *Bus) NotifyOrderChanged(id int64) {
	for _, fn := range b.orders.snapshotItem(id) {
		deliverItem(b, "orders", id, fn)
	}
	b.NotifyOrdersChanged()
}

func (b *Bus) NotifyOrdersChanged() {
	for _, fn := range b.orders.snapshotList() {
		b.deliverList("orders", fn)
	}
}

func (b *Bus) NotifyCourierChanged(id string) {
	for _, fn := range b.couriers.snapshotItem(id) {
		deliverItem(b, "couriers", id, fn)
	}
	b.NotifyCouriersChanged()
}

func (b *Bus) NotifyCouriersChanged() {
	for _, fn := range b.couriers.snapshotList() {
		b.deliverList("couriers", fn)
	}
}

func (b *Bus) NotifyDeliveryChanged(id int64) {
	for _, fn := range b.deliveries.snapshotItem(id) {
		deliverItem(b, "deliveries", id, fn)
	}
	b.NotifyDeliveriesChanged()
}

func (b *Bus) NotifyDeliveriesChanged() {
	for _, fn := range b.deliveries.snapshotList() {
		b.deliverList("deliveries", fn)
	}
}

func (b *Bus) NotifyConfigChanged() {
	b.mu.RLock()
	fns := make([]func(), 0, len(b.configSubs))
	for _, fn := range b.configSubs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		b.deliverList("config", fn)
	}
}

func (b *Bus) NotifyClockChanged(now time.Time) {
	b.mu.RLock()
	fns := make([]func(time.Time), 0, len(b.clockSubs))
	for _, fn := range b.clockSubs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		func() {
			defer b.recoverObserver("clock")
			fn(now)
		}()
	}
}

func (b *Bus) deliverList(topic string, fn func()) {
	defer b.recoverObserver(topic)
	fn()
}

func deliverItem[K comparable](b *Bus, topic string, key K, fn func(K)) {
	defer b.recoverObserver(topic)
	fn(key)
}

func (b *Bus) recoverObserver(topic string) {
	if r := recover(); r != nil {
		b.log.Warn("observer panicked, skipping", "topic", topic, "panic", r)
	}
}

package notify

import (
	"sync"
	"sync/atomic"

	"flight_booking/internal/metrics"
	"flight_booking/internal/models"
)

// DefaultSubscriberBuffer is the per-subscriber queue size used when none is configured.
const DefaultSubscriberBuffer = 32

// Filter scopes a subscription. An empty FlightNumber matches every event.
type Filter struct {
	FlightNumber string
}

func (f Filter) matches(ev *models.FlightStatusEvent) bool {
	return f.FlightNumber == "" || f.FlightNumber == ev.FlightNumber
}

// Subscription is one consumer registered on the Hub.
type Subscription struct {
	id     uint64
	filter Filter
	ch     chan models.FlightStatusEvent
	closed atomic.Bool
	hub    *Hub
}

// ID returns the hub-unique subscription id.
func (s *Subscription) ID() uint64 { return s.id }

// Filter returns the filter the subscription was created with.
func (s *Subscription) Filter() Filter { return s.filter }

// C delivers matching events in publish order. It is closed when the
// subscription is cancelled or the hub shuts down.
func (s *Subscription) C() <-chan models.FlightStatusEvent { return s.ch }

// Cancel unregisters the subscription and closes C. Safe to call more than once
// and concurrently with Publish.
func (s *Subscription) Cancel() {
	if s.hub == nil {
		s.close()
		return
	}
	s.hub.unsubscribe(s.id)
}

func (s *Subscription) close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.ch)
	}
}

// offer hands ev to the subscriber without blocking. When the queue is full the
// oldest queued event is evicted to make room. Returns false if ev or an older
// event had to be dropped.
func (s *Subscription) offer(ev models.FlightStatusEvent) bool {
	select {
	case s.ch <- ev:
		return true
	default:
	}

	// queue full: evict the oldest entry, then retry once
	select {
	case <-s.ch:
	default:
	}
	select {
	case s.ch <- ev:
	default:
	}
	return false
}

// Option configures a Hub.
type Option func(*Hub)

// WithMetrics reports subscriber counts and evictions.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Hub) { h.metrics = m }
}

// WithSubscriberBuffer sets the bounded queue size for each subscriber.
func WithSubscriberBuffer(n int) Option {
	return func(h *Hub) {
		if n > 0 {
			h.buffer = n
		}
	}
}

// Hub is the process-wide multicast point for flight status events.
// One producer publishes; any number of subscribers come and go.
type Hub struct {
	mu            sync.RWMutex
	subscriptions map[uint64]*Subscription
	closed        bool
	nextID        atomic.Uint64
	buffer        int
	metrics       *metrics.Metrics
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		subscriptions: make(map[uint64]*Subscription),
		buffer:        DefaultSubscriberBuffer,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SubscribeAll registers a subscription receiving every future event.
func (h *Hub) SubscribeAll() *Subscription {
	return h.subscribe(Filter{})
}

// SubscribeFiltered registers a subscription receiving future events for one flight number.
func (h *Hub) SubscribeFiltered(flightNumber string) *Subscription {
	return h.subscribe(Filter{FlightNumber: flightNumber})
}

func (h *Hub) subscribe(filter Filter) *Subscription {
	sub := &Subscription{
		id:     h.nextID.Add(1),
		filter: filter,
		ch:     make(chan models.FlightStatusEvent, h.buffer),
		hub:    h,
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		// born closed so range loops over C terminate at once
		sub.close()
		return sub
	}
	h.subscriptions[sub.id] = sub
	n := len(h.subscriptions)
	h.mu.Unlock()

	h.reportSubscribers(n)
	return sub
}

// Publish delivers ev to every matching subscriber and returns how many received it.
// It never blocks on a slow subscriber.
func (h *Hub) Publish(ev models.FlightStatusEvent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for _, sub := range h.subscriptions {
		if !sub.filter.matches(&ev) {
			continue
		}
		if !sub.offer(ev) && h.metrics != nil {
			h.metrics.DeliveriesDropped.Inc()
		}
		delivered++
	}
	return delivered
}

// Count returns the number of registered subscriptions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions)
}

// Close cancels every subscription. Subscriptions created afterwards are closed on arrival.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	subs := make([]*Subscription, 0, len(h.subscriptions))
	for id, sub := range h.subscriptions {
		subs = append(subs, sub)
		delete(h.subscriptions, id)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	h.reportSubscribers(0)
}

// unsubscribe removes a subscription and closes its channel.
func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscriptions[id]
	if ok {
		delete(h.subscriptions, id)
	}
	n := len(h.subscriptions)
	h.mu.Unlock()

	if ok {
		sub.close()
		h.reportSubscribers(n)
	}
}

func (h *Hub) reportSubscribers(n int) {
	if h.metrics != nil {
		h.metrics.Subscribers.Set(float64(n))
	}
}

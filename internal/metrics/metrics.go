package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry holds the process-wide storefront counters.
type Registry struct {
	OrdersPlaced      Counter
	PlacementFailures Counter
	CartItemsAdded    Counter
	EventsPublished   Counter
	EventsFailed      Counter

	// cumulative placement latency in microseconds
	placementMicros Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) ObservePlacement(d time.Duration) {
	r.placementMicros.Add(uint64(d.Microseconds()))
}

type Snapshot struct {
	OrdersPlaced       uint64  `json:"orders_placed"`
	PlacementFailures  uint64  `json:"placement_failures"`
	CartItemsAdded     uint64  `json:"cart_items_added"`
	EventsPublished    uint64  `json:"events_published"`
	EventsFailed       uint64  `json:"events_failed"`
	AvgPlacementMillis float64 `json:"avg_placement_ms"`
}

func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{
		OrdersPlaced:      r.OrdersPlaced.Load(),
		PlacementFailures: r.PlacementFailures.Load(),
		CartItemsAdded:    r.CartItemsAdded.Load(),
		EventsPublished:   r.EventsPublished.Load(),
		EventsFailed:      r.EventsFailed.Load(),
	}
	if s.OrdersPlaced > 0 {
		s.AvgPlacementMillis = float64(r.placementMicros.Load()) / float64(s.OrdersPlaced) / 1000
	}
	return s
}

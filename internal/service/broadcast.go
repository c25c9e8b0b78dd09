package service

import (
	"sync"

	"coldchain/internal/models"
)

// StreamUpdate is the snapshot pushed to subscribers after every successful
// mutation of the session state.
type StreamUpdate struct {
	Telemetry   models.TelemetryReading `json:"telemetry"`
	DaysLeft    float64                 `json:"days_left"`
	ChaosMode   bool                    `json:"chaos_mode"`
	Destination string                  `json:"destination"`
}

// subscriber buffer: a slow consumer loses intermediate snapshots rather
// than blocking the publisher.
const subscriberBuffer = 16

// Hub is an in-process publish-subscribe channel for decision snapshots.
// Delivery per subscriber is in publish order; there is no replay for late
// or disconnected subscribers.
type Hub struct {
	mu     sync.Mutex
	subs   map[int]chan StreamUpdate
	nextID int
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan StreamUpdate)}
}

// Subscribe registers a consumer and returns its channel plus a cancel
// function. Cancel is idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan StreamUpdate, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan StreamUpdate, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Publish fans the update out to all subscribers without ever blocking:
// updates to a full subscriber buffer are dropped.
func (h *Hub) Publish(u StreamUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	for _, ch := range h.subs {
		select {
		case ch <- u:
		default:
		}
	}
}

// Close shuts the hub down and closes all subscriber channels.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

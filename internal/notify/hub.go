package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/Dpak2002/go-ecommerce-api/internal/usecase"
)

// Mirror receives a copy of every drained event, e.g. a broker
// publisher. Failures are logged and swallowed.
type Mirror interface {
	Publish(ctx context.Context, ev usecase.Event) error
}

// Hub fans domain events out to websocket subscribers grouped by
// logical channel (user_<id> or admin_orders). Events flow through one
// bounded queue drained by Run; Enqueue never blocks the caller. There
// is no history: a channel with no connected subscriber drops the
// event permanently.
type Hub struct {
	log     *slog.Logger
	queue   chan usecase.Event
	mirrors []Mirror

	mu       sync.RWMutex
	channels map[string]map[*Client]struct{}
}

func NewHub(log *slog.Logger, queueSize int, mirrors ...Mirror) *Hub {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Hub{
		log:      log,
		queue:    make(chan usecase.Event, queueSize),
		mirrors:  mirrors,
		channels: make(map[string]map[*Client]struct{}),
	}
}

var _ usecase.EventSink = (*Hub)(nil)

// Enqueue hands an event to the drain loop. When the queue is full the
// event is dropped and logged; the triggering operation has already
// committed and must not be slowed down.
func (h *Hub) Enqueue(ev usecase.Event) {
	select {
	case h.queue <- ev:
	default:
		h.log.Warn("event queue full, dropping", "type", ev.Type, "channel", ev.Channel, "order_id", ev.OrderID)
	}
}

// Run drains the queue until ctx is cancelled. Call it once from a
// dedicated goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.queue:
			h.deliver(ctx, ev)
		}
	}
}

func (h *Hub) deliver(ctx context.Context, ev usecase.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal event", "type", ev.Type, "error", err)
		return
	}

	// Sends happen under the read lock so unsubscribe (which closes the
	// client's send channel under the write lock) cannot interleave.
	// trySend never blocks, so the lock is held only briefly.
	h.mu.RLock()
	for c := range h.channels[ev.Channel] {
		c.trySend(payload)
	}
	h.mu.RUnlock()

	for _, m := range h.mirrors {
		if err := m.Publish(ctx, ev); err != nil {
			h.log.Warn("event mirror failed", "type", ev.Type, "error", err)
		}
	}
}

func (h *Hub) subscribe(channel string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.channels[channel] == nil {
		h.channels[channel] = make(map[*Client]struct{})
	}
	h.channels[channel][c] = struct{}{}
}

// unsubscribe removes the client and closes its send channel, which
// stops the write pump without waiting for the next ping tick.
func (h *Hub) unsubscribe(channel string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.channels[channel]
	if _, ok := subs[c]; !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.channels, channel)
	}
	close(c.send)
}

// Subscribers reports the current subscriber count for a channel.
func (h *Hub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels[channel])
}

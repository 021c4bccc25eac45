package runtime

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Hub keeps the outbound sink of every live connection and delivers
// broadcast instructions to them.
type Hub struct {
	mu              sync.RWMutex
	log             *slog.Logger
	sinks           map[domain.ConnectionID]contract.EventSink
	deliveryTimeout time.Duration
}

func NewHub(log *slog.Logger, deliveryTimeout time.Duration) *Hub {
	return &Hub{
		log:             log,
		sinks:           make(map[domain.ConnectionID]contract.EventSink),
		deliveryTimeout: deliveryTimeout,
	}
}

func (h *Hub) Attach(id domain.ConnectionID, sink contract.EventSink) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sinks[id] = sink
}

func (h *Hub) Detach(id domain.ConnectionID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sinks, id)
}

func (h *Hub) Connections() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sinks)
}

// Deliver hands every instruction to its recipients sequentially, in the
// given order, so each recipient observes the events of one operation in order.
// A recipient that is gone or too slow loses the event.
// Returns the number of failed deliveries.
func (h *Hub) Deliver(ctx context.Context, broadcasts []event.Broadcast) int {
	failed := 0
	for _, b := range broadcasts {
		for _, id := range b.Recipients {
			if err := h.Send(ctx, id, b.Event); err != nil {
				h.log.Warn("Delivery failed", "connection_id", id, "event", b.Event.Kind(), "error", err)
				failed++
			}
		}
	}
	return failed
}

// Send delivers one event to one connection within the delivery timeout.
func (h *Hub) Send(ctx context.Context, id domain.ConnectionID, e event.Event) error {
	h.mu.RLock()
	sink, ok := h.sinks[id]
	h.mu.RUnlock()
	if !ok {
		return fmt.Errorf("no sink attached for connection %s", id)
	}

	ctx, cancel := context.WithTimeout(ctx, h.deliveryTimeout)
	defer cancel()
	return sink.Consume(ctx, e)
}

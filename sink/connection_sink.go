package sink

import (
	"chat-rooms/domain/event"
	"context"
)

// ConnectionSink buffers the events of one connection.
// The transport owning the connection drains Events and writes them on the wire.
type ConnectionSink struct {
	Events chan event.Event
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{Events: make(chan event.Event, bufferSize)}
}

// Consume is called by the hub.
// An event always lands when the buffer has room, even with a done context.
// Otherwise it waits for room rather than dropping, so the order of
// events is kept; the hub bounds the wait with its delivery timeout.
func (s *ConnectionSink) Consume(ctx context.Context, e event.Event) error {
	select {
	case s.Events <- e:
		return nil
	default:
	}

	select {
	case s.Events <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

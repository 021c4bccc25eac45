package services

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/errors"
	"chat-rooms/observability"
	"context"
	"fmt"
	"log/slog"
)

// IChatService is what a transport needs: one call per connection lifecycle step.
type IChatService interface {
	Connect(id domain.ConnectionID, sink contract.EventSink)
	Handle(ctx context.Context, id domain.ConnectionID, cmd domain.Command) error
	Acknowledge(ctx context.Context, id domain.ConnectionID, ackID int64, err error)
	Disconnect(ctx context.Context, id domain.ConnectionID)
}

// ChatService runs a command through the coordinator and hands the resulting
// broadcasts to the hub before returning, so an acknowledgement sent
// afterwards always reaches the caller after the events it caused.
type ChatService struct {
	log         *slog.Logger
	coordinator contract.ICoordinator
	hub         contract.IHub
	metrics     *observability.Metrics
}

func NewChatService(log *slog.Logger, coordinator contract.ICoordinator,
	hub contract.IHub, metrics *observability.Metrics) *ChatService {
	return &ChatService{
		log:         log,
		coordinator: coordinator,
		hub:         hub,
		metrics:     metrics,
	}
}

func (s *ChatService) Connect(id domain.ConnectionID, sink contract.EventSink) {
	s.hub.Attach(id, sink)
	s.metrics.SetConnections(s.hub.Connections())
	s.log.Debug("Connection opened", "connection_id", id)
}

// Handle returns the caller-only error of the command, if any.
func (s *ChatService) Handle(ctx context.Context, id domain.ConnectionID, cmd domain.Command) error {
	var broadcasts []event.Broadcast
	var err error

	switch c := cmd.(type) {
	case domain.JoinCommand:
		broadcasts, err = s.coordinator.Join(id, c.Username, c.Room)
	case domain.SendMessageCommand:
		broadcasts, err = s.coordinator.SendMessage(id, c.Text)
	case domain.SendLocationCommand:
		broadcasts, err = s.coordinator.SendLocation(id, c.Lat, c.Long)
	default:
		err = fmt.Errorf("%w: %T", errors.ErrUnknownEvent, cmd)
	}

	name := "unknown"
	if cmd != nil {
		name = cmd.Name()
	}
	s.metrics.CommandHandled(name, errors.Code(err))
	if err != nil {
		return err
	}

	s.metrics.DeliveriesFailed(s.hub.Deliver(ctx, broadcasts))
	return nil
}

// Acknowledge answers the caller only. A failed ack is logged, never retried.
func (s *ChatService) Acknowledge(ctx context.Context, id domain.ConnectionID, ackID int64, err error) {
	ack := event.Ack{ID: ackID, Error: errors.Reason(err)}
	if sendErr := s.hub.Send(ctx, id, ack); sendErr != nil {
		s.log.Warn("Ack lost", "connection_id", id, "ack", ackID, "error", sendErr)
		s.metrics.DeliveriesFailed(1)
	}
}

// Disconnect is the only teardown path of a connection and is safe to call twice.
func (s *ChatService) Disconnect(ctx context.Context, id domain.ConnectionID) {
	s.hub.Detach(id)
	s.metrics.SetConnections(s.hub.Connections())

	broadcasts := s.coordinator.Disconnect(id)
	s.metrics.DeliveriesFailed(s.hub.Deliver(ctx, broadcasts))
	s.log.Debug("Connection closed", "connection_id", id)
}

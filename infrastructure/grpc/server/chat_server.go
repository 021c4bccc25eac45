package server

import (
	"chat-rooms/domain"
	"chat-rooms/infrastructure/grpc/chatpb"
	"chat-rooms/infrastructure/wire"
	"chat-rooms/services"
	"chat-rooms/sink"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type ChatServer struct {
	chatpb.UnimplementedChatServiceServer
	chatService          services.IChatService
	connectionBufferSize int
	log                  *slog.Logger
}

func NewChatServer(log *slog.Logger, chatService services.IChatService, connectionBufferSize int) *ChatServer {
	return &ChatServer{
		chatService:          chatService,
		connectionBufferSize: connectionBufferSize,
		log:                  log,
	}
}

// Session serves one connection for the lifetime of the stream.
// Inbound frames are handled in order on this goroutine; a second goroutine
// drains the connection sink onto the stream. Whatever ends the stream,
// the connection is disconnected exactly once before returning.
func (s *ChatServer) Session(stream chatpb.ChatService_SessionServer) error {
	id := domain.ConnectionID(uuid.NewString())
	connectionSink := sink.NewConnectionSink(s.connectionBufferSize)
	ctx, cancel := context.WithCancel(stream.Context())
	defer cancel()

	s.chatService.Connect(id, connectionSink)
	s.log.Info("gRPC session opened", "connection_id", id)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.pushEvents(ctx, id, stream, connectionSink)
	}()

	err := s.readCommands(ctx, id, stream)

	cancel()
	<-writerDone
	s.chatService.Disconnect(context.WithoutCancel(ctx), id)
	s.log.Info("gRPC session closed", "connection_id", id)

	if err == nil || errors.Is(err, io.EOF) || status.Code(err) == codes.Canceled {
		return nil
	}
	return err
}

func (s *ChatServer) readCommands(ctx context.Context, id domain.ConnectionID, stream chatpb.ChatService_SessionServer) error {
	for {
		frame, err := stream.Recv()
		if err != nil {
			return err
		}

		data, err := wire.FromStruct(frame)
		if err != nil {
			s.log.Debug("Unreadable frame", "connection_id", id, "error", err)
			continue
		}
		cmd, ack, err := wire.DecodeCommand(data)
		if err == nil {
			err = s.chatService.Handle(ctx, id, cmd)
		}
		if ack != nil {
			s.chatService.Acknowledge(ctx, id, *ack, err)
		} else if err != nil {
			s.log.Debug("Command failed without ack", "connection_id", id, "error", err)
		}
	}
}

func (s *ChatServer) pushEvents(ctx context.Context, id domain.ConnectionID,
	stream chatpb.ChatService_SessionServer, connectionSink *sink.ConnectionSink) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-connectionSink.Events:
			data, err := wire.EncodeEvent(e)
			if err != nil {
				s.log.Error("Cannot encode event", "connection_id", id, "event", e.Kind(), "error", err)
				continue
			}
			frame, err := wire.ToStruct(data)
			if err != nil {
				s.log.Error("Cannot convert event", "connection_id", id, "error", err)
				continue
			}
			if err := stream.Send(frame); err != nil {
				s.log.Error("failed to push event to stream",
					"connection_id", id,
					"error", err)
				return
			}
		}
	}
}

// Package websocket serves chat connections over WebSocket.
// Every text frame is a wire envelope; see package wire.
package websocket

import (
	"chat-rooms/domain"
	"chat-rooms/infrastructure/wire"
	"chat-rooms/services"
	"chat-rooms/sink"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	gorilla "github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type Config struct {
	BufferSize     int
	PingInterval   time.Duration
	MaxMessageSize int64
}

// Server upgrades HTTP requests and runs one read pump and one write pump per connection.
type Server struct {
	log      *slog.Logger
	service  services.IChatService
	cfg      Config
	upgrader gorilla.Upgrader
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewServer(log *slog.Logger, service services.IChatService, cfg Config) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		log:     log,
		service: service,
		cfg:     cfg,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Any origin is accepted
			CheckOrigin: func(*http.Request) bool { return true },
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// pongWait leaves a client one missed ping before the connection is dropped.
func (s *Server) pongWait() time.Duration {
	return 2 * s.cfg.PingInterval
}

// ServeHTTP blocks for the lifetime of the connection.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already answered with an HTTP error
		s.log.Debug("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	id := domain.ConnectionID(uuid.NewString())
	connectionSink := sink.NewConnectionSink(s.cfg.BufferSize)
	ctx, cancel := context.WithCancel(s.ctx)

	s.service.Connect(id, connectionSink)
	s.log.Info("Websocket connected", "connection_id", id, "remote", r.RemoteAddr)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writePump(ctx, id, conn, connectionSink)
	}()

	s.readPump(ctx, id, conn)

	// Network loss always ends up here, so every connection is disconnected once
	cancel()
	<-writerDone
	s.service.Disconnect(context.WithoutCancel(ctx), id)
	s.log.Info("Websocket disconnected", "connection_id", id)
}

// Shutdown closes every open connection.
func (s *Server) Shutdown() {
	s.cancel()
}

func (s *Server) readPump(ctx context.Context, id domain.ConnectionID, conn *gorilla.Conn) {
	conn.SetReadLimit(s.cfg.MaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(s.pongWait()))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(s.pongWait()))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure) {
				s.log.Debug("Websocket read failed", "connection_id", id, "error", err)
			}
			return
		}

		cmd, ack, err := wire.DecodeCommand(data)
		if err == nil {
			err = s.service.Handle(ctx, id, cmd)
		}
		if ack != nil {
			s.service.Acknowledge(ctx, id, *ack, err)
		} else if err != nil {
			s.log.Debug("Command failed without ack", "connection_id", id, "error", err)
		}
	}
}

// writePump is the only writer of conn. Closing conn on exit unblocks the read pump.
func (s *Server) writePump(ctx context.Context, id domain.ConnectionID, conn *gorilla.Conn, connectionSink *sink.ConnectionSink) {
	ticker := time.NewTicker(s.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(gorilla.CloseMessage,
				gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, ""))
			return
		case e := <-connectionSink.Events:
			data, err := wire.EncodeEvent(e)
			if err != nil {
				s.log.Error("Cannot encode event", "connection_id", id, "event", e.Kind(), "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(gorilla.TextMessage, data); err != nil {
				s.log.Debug("Websocket write failed", "connection_id", id, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(gorilla.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package websocket

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/infrastructure/wire"
	"chat-rooms/messages"
	"chat-rooms/moderation"
	"chat-rooms/observability"
	"chat-rooms/runtime"
	"chat-rooms/services"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	gorilla "github.com/gorilla/websocket"
)

func newTestServer(t *testing.T) *httptest.Server {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	moderator, err := moderation.NewModerator([]string{"badger"}, '*', log)
	req.NoError(err)

	registry := runtime.NewRegistry()
	coordinator := runtime.NewCoordinator(log, registry, moderator, messages.NewFormatter())
	hub := runtime.NewHub(log, time.Second)
	service := services.NewChatService(log, coordinator, hub, observability.NewMetrics())

	server := NewServer(log, service, Config{
		BufferSize:     16,
		PingInterval:   time.Second,
		MaxMessageSize: 4096,
	})
	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		server.Shutdown()
		ts.Close()
	})
	return ts
}

func dial(t *testing.T, ts *httptest.Server) *gorilla.Conn {
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *gorilla.Conn, cmd domain.Command, ack int64) {
	data, err := wire.EncodeCommand(cmd, lo.ToPtr(ack))
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(gorilla.TextMessage, data))
}

// next renders the next event received by conn as a short line.
func next(t *testing.T, conn *gorilla.Conn) string {
	req := require.New(t)
	req.NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, data, err := conn.ReadMessage()
	req.NoError(err)
	e, err := wire.DecodeEvent(data)
	req.NoError(err)

	switch v := e.(type) {
	case event.MessagePosted:
		return v.Message.Body()
	case event.LocationShared:
		return v.Location.Username + " @ " + v.Location.URL
	case event.RoomDataChanged:
		return "roomData " + v.Data.Room + " " + strings.Join(v.Data.Users, ",")
	case event.Ack:
		return "ack " + v.Error
	}
	return ""
}

func TestServer_Alice_And_Bob(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	alice := dial(t, ts)
	bob := dial(t, ts)

	// When alice joins
	send(t, alice, domain.JoinCommand{Username: "alice", Room: "general"}, 1)

	// Then the welcome and the roster come before the ack
	req.Equal("Admin: Welcome!", next(t, alice))
	req.Equal("roomData general alice", next(t, alice))
	req.Equal("ack ", next(t, alice))

	// When bob joins the same room
	send(t, bob, domain.JoinCommand{Username: "bob", Room: "general"}, 1)

	req.Equal("Admin: Welcome!", next(t, bob))
	req.Equal("roomData general alice,bob", next(t, bob))
	req.Equal("ack ", next(t, bob))
	req.Equal("Admin: bob has joined!", next(t, alice))
	req.Equal("roomData general alice,bob", next(t, alice))

	// When bob says hello and shares his location
	send(t, bob, domain.SendMessageCommand{Text: "hello"}, 2)
	send(t, bob, domain.SendLocationCommand{Lat: 48.8566, Long: 2.3522}, 3)

	req.Equal("bob: hello", next(t, bob))
	req.Equal("ack ", next(t, bob))
	req.Equal("bob @ https://google.com/maps?q=48.8566,2.3522", next(t, bob))
	req.Equal("ack ", next(t, bob))
	req.Equal("bob: hello", next(t, alice))
	req.Equal("bob @ https://google.com/maps?q=48.8566,2.3522", next(t, alice))

	// When alice drops her connection
	req.NoError(alice.Close())

	// Then bob is told
	req.Equal("Admin: alice has left", next(t, bob))
	req.Equal("roomData general bob", next(t, bob))
}

func TestServer_Rejections_Are_Caller_Only(t *testing.T) {
	req := require.New(t)
	ts := newTestServer(t)
	alice := dial(t, ts)
	bob := dial(t, ts)

	// Sending before joining
	send(t, bob, domain.SendMessageCommand{Text: "hello"}, 1)
	req.Equal("ack No user found", next(t, bob))

	send(t, alice, domain.JoinCommand{Username: "alice", Room: "general"}, 1)
	req.Equal("Admin: Welcome!", next(t, alice))
	req.Equal("roomData general alice", next(t, alice))
	req.Equal("ack ", next(t, alice))

	// Taken name, compared case-insensitively
	send(t, bob, domain.JoinCommand{Username: "ALICE", Room: "general"}, 2)
	req.Equal("ack Username is in use", next(t, bob))

	// Missing field
	send(t, bob, domain.JoinCommand{Username: " ", Room: "general"}, 3)
	req.Equal("ack Username and room are required", next(t, bob))

	// Profanity
	send(t, alice, domain.SendMessageCommand{Text: "what a b4dger"}, 2)
	req.Equal("ack Profanity is not allowed", next(t, alice))

	// Unknown event
	req.NoError(bob.WriteMessage(gorilla.TextMessage, []byte(`{"event":"dance","ack":4}`)))
	req.Equal("ack Unknown event", next(t, bob))

	// Alice never received anything from bob's attempts
	send(t, alice, domain.SendMessageCommand{Text: "still alone"}, 3)
	req.Equal("alice: still alone", next(t, alice))
	req.Equal("ack ", next(t, alice))
}

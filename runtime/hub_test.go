package runtime

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/mocks"
	"chat-rooms/sink"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHub_Deliver_In_Order(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	hub := NewHub(log, time.Second)

	alice := mocks.NewMockEventSink(ctrl)
	bob := mocks.NewMockEventSink(ctrl)
	hub.Attach("alice", alice)
	hub.Attach("bob", bob)

	welcome := event.MessagePosted{Message: domain.Message{Username: domain.AdminName, Text: "Welcome!"}}
	roster := event.RoomDataChanged{Data: domain.RoomData{Room: "general", Users: []string{"alice", "bob"}}}

	// Given bob must see the welcome before the roster
	gomock.InOrder(
		bob.EXPECT().Consume(gomock.Any(), welcome).Return(nil),
		alice.EXPECT().Consume(gomock.Any(), roster).Return(nil),
		bob.EXPECT().Consume(gomock.Any(), roster).Return(nil),
	)

	// When
	failed := hub.Deliver(context.Background(), []event.Broadcast{
		{Recipients: []domain.ConnectionID{"bob"}, Event: welcome},
		{Recipients: []domain.ConnectionID{"alice", "bob"}, Event: roster},
	})

	// Then
	req.Zero(failed)
	req.Equal(2, hub.Connections())
}

func TestHub_Deliver_Counts_Failures(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	hub := NewHub(log, time.Second)

	alice := mocks.NewMockEventSink(ctrl)
	hub.Attach("alice", alice)
	e := event.MessagePosted{Message: domain.Message{Username: "bob", Text: "hi"}}
	alice.EXPECT().Consume(gomock.Any(), e).Return(context.DeadlineExceeded)

	// When one recipient fails and another one is gone
	failed := hub.Deliver(context.Background(), []event.Broadcast{
		{Recipients: []domain.ConnectionID{"alice", "gone"}, Event: e},
	})

	// Then both are counted
	req.Equal(2, failed)
}

func TestHub_Send_Times_Out_On_Full_Sink(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	hub := NewHub(log, 20*time.Millisecond)

	// Given a sink with a single slot, already used
	s := sink.NewConnectionSink(1)
	hub.Attach("alice", s)
	req.NoError(hub.Send(context.Background(), "alice", event.Ack{ID: 1}))

	// When another event arrives
	err := hub.Send(context.Background(), "alice", event.Ack{ID: 2})

	// Then the delivery gives up
	req.ErrorIs(err, context.DeadlineExceeded)
	req.Equal(event.Ack{ID: 1}, <-s.Events)
}

func TestHub_Detach(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	hub := NewHub(log, time.Second)

	hub.Attach("alice", sink.NewConnectionSink(1))
	hub.Detach("alice")
	hub.Detach("alice")

	req.Zero(hub.Connections())
	req.Error(hub.Send(context.Background(), "alice", event.Ack{ID: 1}))
}

func TestHub_Deliver_Free_Buffer_Never_Fails(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given a delivery timeout that expires immediately and a roomy sink
	hub := NewHub(log, time.Nanosecond)
	connectionSink := sink.NewConnectionSink(1000)
	hub.Attach("alice", connectionSink)

	broadcasts := make([]event.Broadcast, 0, 200)
	for i := range 200 {
		broadcasts = append(broadcasts, event.Broadcast{
			Recipients: []domain.ConnectionID{"alice"},
			Event:      event.Ack{ID: int64(i)},
		})
	}

	// When
	failed := hub.Deliver(context.Background(), broadcasts)

	// Then every event fits in the buffer
	req.Zero(failed)
	req.Len(connectionSink.Events, 200)
}

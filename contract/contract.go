//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"context"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself
// The supervisor restarts it when Run panics or fails
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// Used for logging during the worker lifecycle.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IRegistry holds the participants of every room.
type IRegistry interface {
	Add(id domain.ConnectionID, displayName, room string) (domain.Participant, error)
	Remove(id domain.ConnectionID) (domain.Participant, bool)
	Get(id domain.ConnectionID) (domain.Participant, bool)
	NamesInRoom(room string) []string
	ConnectionsInRoom(room string) []domain.ConnectionID
	Stats() domain.Stats
}

type ProfanityChecker interface {
	IsProfane(text string) bool
}

// MessageFormatter stamps outgoing messages with an id and a creation time.
type MessageFormatter interface {
	FormatText(sender, text string) domain.Message
	FormatLocation(sender string, lat, long float64) domain.LocationMessage
}

// ICoordinator runs the session lifecycle. It never performs I/O:
// it returns the instructions the transport must deliver.
type ICoordinator interface {
	Join(id domain.ConnectionID, displayName, room string) ([]event.Broadcast, error)
	SendMessage(id domain.ConnectionID, text string) ([]event.Broadcast, error)
	SendLocation(id domain.ConnectionID, lat, long float64) ([]event.Broadcast, error)
	Disconnect(id domain.ConnectionID) []event.Broadcast
}

// EventSink is the outbound side of one connection.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

// IHub maps connections to their sinks and delivers instructions.
type IHub interface {
	Attach(id domain.ConnectionID, sink EventSink)
	Detach(id domain.ConnectionID)
	Deliver(ctx context.Context, broadcasts []event.Broadcast) int
	Send(ctx context.Context, id domain.ConnectionID, e event.Event) error
	Connections() int
}

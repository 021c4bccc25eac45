package event

import (
	"chat-rooms/domain"
)

// Kind is the outbound event name seen by clients.
type Kind string

const (
	KindMessage         Kind = "message"
	KindLocationMessage Kind = "locationMessage"
	KindRoomData        Kind = "roomData"
	KindAck             Kind = "ack"
)

// Event is anything delivered to a connection.
type Event interface {
	Kind() Kind
}

type MessagePosted struct {
	Message domain.Message
}

func (MessagePosted) Kind() Kind { return KindMessage }

type LocationShared struct {
	Location domain.LocationMessage
}

func (LocationShared) Kind() Kind { return KindLocationMessage }

type RoomDataChanged struct {
	Data domain.RoomData
}

func (RoomDataChanged) Kind() Kind { return KindRoomData }

// Ack answers one inbound command of a single connection.
// An empty Error means the command succeeded.
type Ack struct {
	ID    int64
	Error string
}

func (Ack) Kind() Kind { return KindAck }

// Broadcast is a delivery instruction: Event goes to every connection of
// Recipients, in order. Recipients are resolved when the instruction is
// built, so they reflect the registry right after the mutation that caused it.
type Broadcast struct {
	Recipients []domain.ConnectionID
	Event      Event
}

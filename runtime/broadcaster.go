package runtime

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"

	"github.com/samber/lo"
)

// Broadcaster turns a room name into the concrete audience of an event.
type Broadcaster struct {
	registry contract.IRegistry
}

func NewBroadcaster(registry contract.IRegistry) Broadcaster {
	return Broadcaster{registry: registry}
}

// ToRoom addresses every current member of the room.
func (b Broadcaster) ToRoom(room string, e event.Event) event.Broadcast {
	return event.Broadcast{Recipients: b.registry.ConnectionsInRoom(room), Event: e}
}

// ToRoomExcept addresses every current member of the room but one.
func (b Broadcaster) ToRoomExcept(room string, except domain.ConnectionID, e event.Event) event.Broadcast {
	recipients := lo.Without(b.registry.ConnectionsInRoom(room), except)
	return event.Broadcast{Recipients: recipients, Event: e}
}

// To addresses a single connection.
func (b Broadcaster) To(id domain.ConnectionID, e event.Event) event.Broadcast {
	return event.Broadcast{Recipients: []domain.ConnectionID{id}, Event: e}
}

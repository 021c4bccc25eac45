package runtime

import (
	"chat-rooms/contract"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/lo"
)

// Coordinator owns the session lifecycle of every connection:
// Unjoined -> Joined -> Left/Disconnected.
// Each operation runs under one lock, so the registry mutation and the roster
// snapshot it broadcasts are taken atomically. Nothing here performs I/O.
type Coordinator struct {
	mu          sync.Mutex
	log         *slog.Logger
	registry    contract.IRegistry
	broadcaster Broadcaster
	checker     contract.ProfanityChecker
	formatter   contract.MessageFormatter
}

func NewCoordinator(log *slog.Logger, registry contract.IRegistry,
	checker contract.ProfanityChecker, formatter contract.MessageFormatter) *Coordinator {
	return &Coordinator{
		log:         log,
		registry:    registry,
		broadcaster: NewBroadcaster(registry),
		checker:     checker,
		formatter:   formatter,
	}
}

// Join registers the participant, then addresses in order:
// the welcome to the joiner, the announcement to the others, the roster to everyone.
func (c *Coordinator) Join(id domain.ConnectionID, displayName, room string) ([]event.Broadcast, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	participant, err := c.registry.Add(id, displayName, room)
	if err != nil {
		c.log.Debug("Join rejected", "connection_id", id, "error", err)
		return nil, err
	}
	c.log.Info("Participant joined", "connection_id", id,
		"name", participant.DisplayName, "room", participant.Room)

	welcome := c.formatter.FormatText(domain.AdminName, "Welcome!")
	announcement := c.formatter.FormatText(domain.AdminName,
		fmt.Sprintf("%s has joined!", participant.DisplayName))

	return withRecipients(
		c.broadcaster.To(id, event.MessagePosted{Message: welcome}),
		c.broadcaster.ToRoomExcept(participant.Room, id, event.MessagePosted{Message: announcement}),
		c.broadcaster.ToRoom(participant.Room, c.roomData(participant.Room)),
	), nil
}

func (c *Coordinator) SendMessage(id domain.ConnectionID, text string) ([]event.Broadcast, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	participant, ok := c.registry.Get(id)
	if !ok {
		return nil, errors.ErrUserNotFound
	}
	if c.checker.IsProfane(text) {
		c.log.Debug("Message rejected", "connection_id", id, "room", participant.Room)
		return nil, errors.ErrProfanity
	}

	message := c.formatter.FormatText(participant.DisplayName, text)
	return withRecipients(
		c.broadcaster.ToRoom(participant.Room, event.MessagePosted{Message: message}),
	), nil
}

// SendLocation forwards the coordinates untouched: no range or content check.
func (c *Coordinator) SendLocation(id domain.ConnectionID, lat, long float64) ([]event.Broadcast, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	participant, ok := c.registry.Get(id)
	if !ok {
		return nil, errors.ErrUserNotFound
	}

	location := c.formatter.FormatLocation(participant.DisplayName, lat, long)
	return withRecipients(
		c.broadcaster.ToRoom(participant.Room, event.LocationShared{Location: location}),
	), nil
}

// Disconnect is idempotent: an unknown or already removed connection yields nothing.
func (c *Coordinator) Disconnect(id domain.ConnectionID) []event.Broadcast {
	c.mu.Lock()
	defer c.mu.Unlock()

	participant, ok := c.registry.Remove(id)
	if !ok {
		return nil
	}
	c.log.Info("Participant left", "connection_id", id,
		"name", participant.DisplayName, "room", participant.Room)

	farewell := c.formatter.FormatText(domain.AdminName,
		fmt.Sprintf("%s has left", participant.DisplayName))

	return withRecipients(
		c.broadcaster.ToRoom(participant.Room, event.MessagePosted{Message: farewell}),
		c.broadcaster.ToRoom(participant.Room, c.roomData(participant.Room)),
	)
}

func (c *Coordinator) roomData(room string) event.RoomDataChanged {
	return event.RoomDataChanged{Data: domain.RoomData{
		Room:  room,
		Users: c.registry.NamesInRoom(room),
	}}
}

// withRecipients drops instructions nobody would receive, e.g. the join
// announcement of the first member of a room.
func withRecipients(broadcasts ...event.Broadcast) []event.Broadcast {
	return lo.Filter(broadcasts, func(b event.Broadcast, _ int) bool {
		return len(b.Recipients) > 0
	})
}

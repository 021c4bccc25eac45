package runtime

import (
	"chat-rooms/domain"
	"chat-rooms/errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type joinRequest struct {
	DisplayName string `validate:"required"`
	Room        string `validate:"required"`
}

// Registry is the in-memory participant directory.
// Rooms are implicit: a room key lives in roomMembers only while it has members.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[domain.ConnectionID]domain.Participant // map connection -> participant
	roomMembers map[string][]domain.ConnectionID           // map room to connections, in join order
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[domain.ConnectionID]domain.Participant),
		roomMembers: make(map[string][]domain.ConnectionID),
	}
}

// Add registers a participant for the connection.
// Name and room are trimmed first. The name must be free in the room,
// compared case-insensitively, and the connection must not hold a participant yet.
// The check and the insert happen under the same lock.
func (r *Registry) Add(id domain.ConnectionID, displayName, room string) (domain.Participant, error) {
	req := joinRequest{
		DisplayName: strings.TrimSpace(displayName),
		Room:        strings.TrimSpace(room),
	}
	if err := validate.Struct(req); err != nil {
		return domain.Participant{}, fmt.Errorf("%w: %v", errors.ErrMissingField, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; ok {
		return domain.Participant{}, errors.ErrAlreadyJoined
	}

	taken := lo.ContainsBy(r.roomMembers[req.Room], func(member domain.ConnectionID) bool {
		return strings.EqualFold(r.sessions[member].DisplayName, req.DisplayName)
	})
	if taken {
		return domain.Participant{}, errors.ErrNameTaken
	}

	participant := domain.Participant{
		ConnectionID: id,
		DisplayName:  req.DisplayName,
		Room:         req.Room,
	}
	r.sessions[id] = participant
	r.roomMembers[req.Room] = append(r.roomMembers[req.Room], id)
	return participant, nil
}

// Remove deletes the participant of the connection and returns it.
// Removing an unknown connection is a no-op reported by false.
func (r *Registry) Remove(id domain.ConnectionID) (domain.Participant, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	participant, ok := r.sessions[id]
	if !ok {
		return domain.Participant{}, false
	}
	delete(r.sessions, id)

	members := lo.Without(r.roomMembers[participant.Room], id)
	// If no one is left in the room, remove the room entry entirely
	if len(members) == 0 {
		delete(r.roomMembers, participant.Room)
	} else {
		r.roomMembers[participant.Room] = members
	}
	return participant, true
}

func (r *Registry) Get(id domain.ConnectionID) (domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	participant, ok := r.sessions[id]
	return participant, ok
}

// NamesInRoom returns the display names of the room in join order.
// The room must match exactly; it is not trimmed again.
func (r *Registry) NamesInRoom(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.roomMembers[room], func(id domain.ConnectionID, _ int) string {
		return r.sessions[id].DisplayName
	})
}

// ConnectionsInRoom returns a copy of the room members in join order.
func (r *Registry) ConnectionsInRoom(room string) []domain.ConnectionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.roomMembers[room])
}

func (r *Registry) Stats() domain.Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return domain.Stats{
		Rooms:        len(r.roomMembers),
		Participants: len(r.sessions),
	}
}

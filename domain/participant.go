// Package domain contains core concepts of the chat system.
// This file defines Participant entities and related invariants.
// No runtime, network, or UI logic should be added here.
package domain

// ConnectionID identifies one transport connection for its whole lifetime.
type ConnectionID string

// Participant binds a connection to a display name inside a room.
// DisplayName and Room are stored trimmed. Two participants of the same room
// never share a DisplayName, compared case-insensitively.
// A participant is never mutated: changing name or room is a remove then add.
type Participant struct {
	ConnectionID ConnectionID
	DisplayName  string
	Room         string
}

// Stats is a point-in-time count of the registry content.
type Stats struct {
	Rooms        int
	Participants int
}

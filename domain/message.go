// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once formatted.
package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// AdminName is the sender used for system announcements.
const AdminName = "Admin"

// Message represents an immutable chat line.
type Message struct {
	ID        ulid.ULID // time-sortable identifier
	Username  string
	Text      string
	CreatedAt time.Time
}

// Body renders the message the way clients display it.
func (m Message) Body() string {
	return m.Username + ": " + m.Text
}

// LocationMessage is a shared position rendered as a map link.
type LocationMessage struct {
	ID        ulid.ULID
	Username  string
	URL       string
	CreatedAt time.Time
}

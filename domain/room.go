package domain

// RoomData is the roster snapshot of a room.
// A room has no lifecycle of its own: it exists while one participant references it.
type RoomData struct {
	Room  string
	Users []string
}

package main

import (
	"bytes"
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		command domain.Command
		wantErr bool
	}{
		{"hello there", domain.SendMessageCommand{Text: "hello there"}, false},
		{"   ", nil, false},
		{"/join alice general", domain.JoinCommand{Username: "alice", Room: "general"}, false},
		{"/join alice", nil, true},
		{"/location 48.85 2.35", domain.SendLocationCommand{Lat: 48.85, Long: 2.35}, false},
		{"/location north 2", nil, true},
		{"/dance", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			req := require.New(t)

			command, err := parseLine(tt.line)

			req.Equal(tt.wantErr, err != nil)
			req.Equal(tt.command, command)
		})
	}
}

func TestParseLine_Quit(t *testing.T) {
	_, err := parseLine("/quit")
	require.ErrorIs(t, err, errQuit)
}

func TestPrinter(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	printer := NewPrinter(&out, false)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	printer.Print(event.MessagePosted{Message: domain.Message{Username: "bob", Text: "hello", CreatedAt: at}})
	printer.Print(event.LocationShared{Location: domain.LocationMessage{
		Username: "bob", URL: "https://google.com/maps?q=1,2", CreatedAt: at,
	}})
	printer.Print(event.RoomDataChanged{Data: domain.RoomData{Room: "general", Users: []string{"alice", "bob"}}})
	printer.Print(event.Ack{ID: 1})
	printer.Print(event.Ack{ID: 2, Error: "Username is in use"})

	text := out.String()
	req.Contains(text, "bob: hello")
	req.Contains(text, "bob shared a location: https://google.com/maps?q=1,2")
	req.Contains(text, "Room general")
	req.Contains(text, "alice")
	req.Contains(text, "✗ Username is in use")
}

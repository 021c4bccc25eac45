package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessage_Body(t *testing.T) {
	req := require.New(t)

	req.Equal("Admin: Welcome!", Message{Username: AdminName, Text: "Welcome!"}.Body())
	req.Equal("bob: a: b", Message{Username: "bob", Text: "a: b"}.Body())
}

func TestCommand_Names(t *testing.T) {
	req := require.New(t)

	req.Equal("join", JoinCommand{}.Name())
	req.Equal("sendMessage", SendMessageCommand{}.Name())
	req.Equal("sendLocation", SendLocationCommand{}.Name())
}

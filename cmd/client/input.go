package main

import (
	"chat-rooms/domain"
	"fmt"
	"strconv"
	"strings"
)

const usage = "commands: /join <name> <room>, /location <lat> <long>, /quit, anything else is sent to the room"

var errQuit = fmt.Errorf("quit")

// parseLine turns one line typed by the user into a command.
// An empty line gives no command and no error.
func parseLine(line string) (domain.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	if !strings.HasPrefix(line, "/") {
		return domain.SendMessageCommand{Text: line}, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit":
		return nil, errQuit
	case "/join":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: /join <name> <room>")
		}
		return domain.JoinCommand{Username: fields[1], Room: fields[2]}, nil
	case "/location":
		if len(fields) != 3 {
			return nil, fmt.Errorf("usage: /location <lat> <long>")
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q", fields[1])
		}
		long, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q", fields[2])
		}
		return domain.SendLocationCommand{Lat: lat, Long: long}, nil
	default:
		return nil, fmt.Errorf("unknown command %s, %s", fields[0], usage)
	}
}

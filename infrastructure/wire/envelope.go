// Package wire is the JSON format shared by every transport.
// A frame is an envelope naming the event, an optional acknowledgement id
// and the payload of the event.
package wire

import (
	"chat-rooms/domain"
	"chat-rooms/domain/event"
	"chat-rooms/errors"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/lo"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

type Envelope struct {
	Event   string          `json:"event"`
	Ack     *int64          `json:"ack,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MaxAckID is the largest ack id a frame may carry. The gRPC transport holds
// numbers as doubles, which are exact up to 2^53 only.
const MaxAckID = 1 << 53

// inbound reads the ack as a number literal so both 42 and 4.2e1 are accepted.
type inbound struct {
	Event   string          `json:"event"`
	Ack     json.Number     `json:"ack,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type joinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

type locationPayload struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type messagePayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"`
}

type locationMessagePayload struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"`
}

type roomDataPayload struct {
	Room  string   `json:"room"`
	Users []string `json:"users"`
}

type ackPayload struct {
	Error string `json:"error,omitempty"`
}

// DecodeCommand reads an inbound frame.
// The ack id is returned even when the payload is invalid, so the caller can answer.
// Ack ids must be integers in [0, MaxAckID].
func DecodeCommand(data []byte) (domain.Command, *int64, error) {
	var in inbound
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	ack, err := parseAck(in.Ack)
	if err != nil {
		return nil, nil, err
	}
	env := Envelope{Event: in.Event, Ack: ack, Payload: in.Payload}

	switch env.Event {
	case domain.CommandJoin:
		var p joinPayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return nil, env.Ack, err
		}
		return domain.JoinCommand{Username: p.Username, Room: p.Room}, env.Ack, nil
	case domain.CommandSendMessage:
		var text string
		if err := unmarshalPayload(env.Payload, &text); err != nil {
			return nil, env.Ack, err
		}
		return domain.SendMessageCommand{Text: text}, env.Ack, nil
	case domain.CommandSendLocation:
		var p locationPayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return nil, env.Ack, err
		}
		return domain.SendLocationCommand{Lat: p.Lat, Long: p.Long}, env.Ack, nil
	default:
		return nil, env.Ack, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, env.Event)
	}
}

// EncodeCommand is used by clients.
func EncodeCommand(cmd domain.Command, ack *int64) ([]byte, error) {
	var payload any
	switch c := cmd.(type) {
	case domain.JoinCommand:
		payload = joinPayload{Username: c.Username, Room: c.Room}
	case domain.SendMessageCommand:
		payload = c.Text
	case domain.SendLocationCommand:
		payload = locationPayload{Lat: c.Lat, Long: c.Long}
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrUnknownEvent, cmd)
	}
	return encode(cmd.Name(), ack, payload)
}

func EncodeEvent(e event.Event) ([]byte, error) {
	switch v := e.(type) {
	case event.MessagePosted:
		return encode(string(v.Kind()), nil, messagePayload{
			ID:        v.Message.ID.String(),
			Username:  v.Message.Username,
			Text:      v.Message.Text,
			Body:      v.Message.Body(),
			CreatedAt: v.Message.CreatedAt.UnixMilli(),
		})
	case event.LocationShared:
		return encode(string(v.Kind()), nil, locationMessagePayload{
			ID:        v.Location.ID.String(),
			Username:  v.Location.Username,
			URL:       v.Location.URL,
			CreatedAt: v.Location.CreatedAt.UnixMilli(),
		})
	case event.RoomDataChanged:
		return encode(string(v.Kind()), nil, roomDataPayload{
			Room:  v.Data.Room,
			Users: lo.Ternary(v.Data.Users == nil, []string{}, v.Data.Users),
		})
	case event.Ack:
		return encode(string(v.Kind()), lo.ToPtr(v.ID), ackPayload{Error: v.Error})
	default:
		return nil, fmt.Errorf("%w: %T", errors.ErrUnknownEvent, e)
	}
}

// DecodeEvent is used by clients. Times come back in UTC at millisecond precision.
func DecodeEvent(data []byte) (event.Event, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}

	switch event.Kind(env.Event) {
	case event.KindMessage:
		var p messagePayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return nil, err
		}
		return event.MessagePosted{Message: domain.Message{
			ID:        parseID(p.ID),
			Username:  p.Username,
			Text:      p.Text,
			CreatedAt: time.UnixMilli(p.CreatedAt).UTC(),
		}}, nil
	case event.KindLocationMessage:
		var p locationMessagePayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return nil, err
		}
		return event.LocationShared{Location: domain.LocationMessage{
			ID:        parseID(p.ID),
			Username:  p.Username,
			URL:       p.URL,
			CreatedAt: time.UnixMilli(p.CreatedAt).UTC(),
		}}, nil
	case event.KindRoomData:
		var p roomDataPayload
		if err := unmarshalPayload(env.Payload, &p); err != nil {
			return nil, err
		}
		return event.RoomDataChanged{Data: domain.RoomData{Room: p.Room, Users: p.Users}}, nil
	case event.KindAck:
		var p ackPayload
		if len(env.Payload) > 0 {
			if err := unmarshalPayload(env.Payload, &p); err != nil {
				return nil, err
			}
		}
		return event.Ack{ID: lo.FromPtr(env.Ack), Error: p.Error}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, env.Event)
	}
}

// ToStruct carries a JSON frame inside a protobuf message for the gRPC transport.
func ToStruct(data []byte) (*structpb.Struct, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return s, nil
}

// FromStruct is the reverse of ToStruct.
func FromStruct(s *structpb.Struct) ([]byte, error) {
	return protojson.Marshal(s)
}

func parseAck(n json.Number) (*int64, error) {
	if n == "" {
		return nil, nil
	}
	if id, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		if id < 0 || id > MaxAckID {
			return nil, fmt.Errorf("%w: ack %d out of range", errors.ErrInvalidPayload, id)
		}
		return &id, nil
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f > MaxAckID {
		return nil, fmt.Errorf("%w: ack %s is not a valid id", errors.ErrInvalidPayload, n)
	}
	id := int64(f)
	return &id, nil
}

func encode(name string, ack *int64, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: name, Ack: ack, Payload: raw})
}

func unmarshalPayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: missing payload", errors.ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return nil
}

// parseID tolerates frames from older clients that carry no id.
func parseID(s string) ulid.ULID {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return ulid.ULID{}
	}
	return id
}

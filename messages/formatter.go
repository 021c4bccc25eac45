// Package messages builds the timestamped payloads broadcast to rooms.
package messages

import (
	"chat-rooms/domain"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

const locationURLFormat = "https://google.com/maps?q=%s,%s"

type Formatter struct {
	now     func() time.Time
	entropy io.Reader
}

type Option func(*Formatter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) { f.now = now }
}

func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{now: time.Now, entropy: ulid.DefaultEntropy()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Formatter) FormatText(sender, text string) domain.Message {
	at := f.now().UTC()
	return domain.Message{
		ID:        f.newID(at),
		Username:  sender,
		Text:      text,
		CreatedAt: at,
	}
}

func (f *Formatter) FormatLocation(sender string, lat, long float64) domain.LocationMessage {
	at := f.now().UTC()
	return domain.LocationMessage{
		ID:        f.newID(at),
		Username:  sender,
		URL:       LocationURL(lat, long),
		CreatedAt: at,
	}
}

// LocationURL renders coordinates with the shortest exact decimal form.
func LocationURL(lat, long float64) string {
	return fmt.Sprintf(locationURLFormat,
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(long, 'f', -1, 64))
}

func (f *Formatter) newID(at time.Time) ulid.ULID {
	return ulid.MustNew(ulid.Timestamp(at), f.entropy)
}

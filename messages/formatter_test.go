package messages

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"
)

func TestFormatter_FormatText(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFormatter(WithClock(func() time.Time { return at }))

	msg := f.FormatText("bob", "hello")

	req.Equal("bob", msg.Username)
	req.Equal("hello", msg.Text)
	req.Equal("bob: hello", msg.Body())
	req.Equal(at, msg.CreatedAt)
	req.Equal(ulid.Timestamp(at), msg.ID.Time())
}

func TestFormatter_IDsAreMonotonic(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := NewFormatter(WithClock(func() time.Time { return at }))

	first := f.FormatText("alice", "one")
	second := f.FormatText("alice", "two")

	// Same millisecond, still strictly ordered
	req.Equal(-1, first.ID.Compare(second.ID))
}

func TestFormatter_FormatLocation(t *testing.T) {
	req := require.New(t)
	f := NewFormatter()

	loc := f.FormatLocation("alice", 48.8566, 2.3522)

	req.Equal("alice", loc.Username)
	req.Equal("https://google.com/maps?q=48.8566,2.3522", loc.URL)
	req.False(loc.CreatedAt.IsZero())
}

func TestLocationURL_PassesValuesThrough(t *testing.T) {
	req := require.New(t)
	// Out of range values are not validated
	req.Equal("https://google.com/maps?q=-123.5,400", LocationURL(-123.5, 400))
	req.Equal("https://google.com/maps?q=0,0", LocationURL(0, 0))
}

package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters_And_Gauges(t *testing.T) {
	req := require.New(t)
	m := NewMetrics()

	// When
	m.CommandHandled("join", "ok")
	m.CommandHandled("join", "ok")
	m.CommandHandled("sendMessage", "profanity")
	m.DeliveriesFailed(0)
	m.DeliveriesFailed(3)
	m.SetRooms(2)
	m.SetParticipants(5)
	m.SetConnections(6)

	// Then
	req.Equal(float64(2), testutil.ToFloat64(m.commands.WithLabelValues("join", "ok")))
	req.Equal(float64(1), testutil.ToFloat64(m.commands.WithLabelValues("sendMessage", "profanity")))
	req.Equal(float64(3), testutil.ToFloat64(m.failedDeliveries))
	req.Equal(float64(2), testutil.ToFloat64(m.rooms))
	req.Equal(float64(5), testutil.ToFloat64(m.participants))
	req.Equal(float64(6), testutil.ToFloat64(m.activeConnections))
}

func TestMetrics_Handler(t *testing.T) {
	req := require.New(t)
	m := NewMetrics()
	m.SetRooms(1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	req.Equal(http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	req.NoError(err)
	req.Contains(string(body), "chat_rooms 1")
	req.Contains(string(body), "go_goroutines")
}

func TestProcessProbe_Fill(t *testing.T) {
	req := require.New(t)
	probe, err := NewProcessProbe()
	req.NoError(err)

	h := Health{Rooms: 1}
	probe.Fill(&h)

	req.Equal(StatusUp, h.Status)
	req.Equal(1, h.Rooms)
	req.NotZero(h.RSSBytes)
}

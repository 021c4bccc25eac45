package httpserver

import (
	"chat-rooms/observability"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fixedHealth observability.Health

func (f fixedHealth) Health() observability.Health { return observability.Health(f) }

func newTestRouter(health observability.Health) http.Handler {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	return NewRouter(log, ws, fixedHealth(health), observability.NewMetrics().Handler())
}

func TestRouter_Health(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(observability.Health{Status: observability.StatusUp, Rooms: 2, Participants: 3})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	req.Equal(http.StatusOK, rec.Code)
	var got observability.Health
	req.NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	req.Equal(2, got.Rooms)
	req.Equal(3, got.Participants)
}

func TestRouter_Health_Degraded(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(observability.Health{Status: observability.StatusDegraded})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	req.Equal(http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_Routes(t *testing.T) {
	req := require.New(t)
	router := newTestRouter(observability.Health{Status: observability.StatusUp})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	req.Equal(http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	req.Equal(http.StatusOK, rec.Code)
	req.Contains(rec.Body.String(), "chat_rooms 0")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	req.Equal(http.StatusNotFound, rec.Code)
}

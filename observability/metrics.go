// Package observability exposes what the chat server is doing:
// Prometheus metrics and a process health snapshot.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "chat"

// Metrics owns its registry so tests and several servers in one process never collide.
type Metrics struct {
	registry          *prometheus.Registry
	commands          *prometheus.CounterVec
	failedDeliveries  prometheus.Counter
	rooms             prometheus.Gauge
	participants      prometheus.Gauge
	activeConnections prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Inbound commands by name and result.",
		}, []string{"command", "result"}),
		failedDeliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failed_deliveries_total",
			Help:      "Events that could not be handed to a connection.",
		}),
		rooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms",
			Help:      "Rooms with at least one participant.",
		}),
		participants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants",
			Help:      "Connections that joined a room.",
		}),
		activeConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections",
			Help:      "Open connections, joined or not.",
		}),
	}
	m.registry.MustRegister(
		m.commands,
		m.failedDeliveries,
		m.rooms,
		m.participants,
		m.activeConnections,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// CommandHandled counts one command; result is an errors.Code value.
func (m *Metrics) CommandHandled(command, result string) {
	m.commands.WithLabelValues(command, result).Inc()
}

func (m *Metrics) DeliveriesFailed(n int) {
	if n > 0 {
		m.failedDeliveries.Add(float64(n))
	}
}

func (m *Metrics) SetRooms(n int)        { m.rooms.Set(float64(n)) }
func (m *Metrics) SetParticipants(n int) { m.participants.Set(float64(n)) }
func (m *Metrics) SetConnections(n int)  { m.activeConnections.Set(float64(n)) }

// Handler exposes Prometheus metrics at /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

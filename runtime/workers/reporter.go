package workers

import (
	"chat-rooms/contract"
	"chat-rooms/observability"
	"context"
	"log/slog"
	"time"
)

// ReporterWorker periodically publishes the room and connection counts
// to the metrics and to the log.
type ReporterWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	hub      contract.IHub
	metrics  *observability.Metrics
	health   *observability.HealthReporter
	interval time.Duration
}

func NewReporterWorker(log *slog.Logger, registry contract.IRegistry, hub contract.IHub,
	metrics *observability.Metrics, health *observability.HealthReporter, interval time.Duration) *ReporterWorker {
	return &ReporterWorker{
		log:      log,
		registry: registry,
		hub:      hub,
		metrics:  metrics,
		health:   health,
		interval: interval,
	}
}

func (w *ReporterWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping reporter")
			return nil
		case <-ticker.C:
			w.report()
		}
	}
}

func (w *ReporterWorker) report() {
	stats := w.registry.Stats()
	connections := w.hub.Connections()
	w.metrics.SetRooms(stats.Rooms)
	w.metrics.SetParticipants(stats.Participants)
	w.metrics.SetConnections(connections)

	h := w.health.Health()
	w.log.Info("Chat stats",
		"rooms", stats.Rooms,
		"participants", stats.Participants,
		"connections", connections,
		"rss_mb", h.RSSBytes/(1024*1024),
		"cpu_percent", h.CPUPercent,
		"status", h.Status)
}

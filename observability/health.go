package observability

import (
	"chat-rooms/contract"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"
)

type Status string

const (
	StatusUp       Status = "UP"
	StatusDegraded Status = "DEGRADED"
)

// Health is the payload of the /health endpoint.
type Health struct {
	Status       Status  `json:"status"`
	Uptime       string  `json:"uptime"`
	Rooms        int     `json:"rooms"`
	Participants int     `json:"participants"`
	Connections  int     `json:"connections"`
	RSSBytes     uint64  `json:"rss_bytes"`
	CPUPercent   float64 `json:"cpu_percent"`
}

// ProcessProbe reads the resource usage of the current process.
type ProcessProbe struct {
	proc    *process.Process
	started time.Time
}

func NewProcessProbe() (*ProcessProbe, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, err
	}
	return &ProcessProbe{proc: p, started: time.Now()}, nil
}

// Fill completes h with process figures.
// A failing probe degrades the status instead of failing the request.
func (p *ProcessProbe) Fill(h *Health) {
	h.Status = StatusUp
	h.Uptime = time.Since(p.started).Round(time.Second).String()

	mem, err := p.proc.MemoryInfo()
	if err != nil {
		h.Status = StatusDegraded
		return
	}
	h.RSSBytes = mem.RSS

	cpu, err := p.proc.CPUPercent()
	if err != nil {
		h.Status = StatusDegraded
		return
	}
	h.CPUPercent = cpu
}

// HealthReporter assembles the /health payload from live server state.
type HealthReporter struct {
	registry contract.IRegistry
	hub      contract.IHub
	probe    *ProcessProbe
}

func NewHealthReporter(registry contract.IRegistry, hub contract.IHub, probe *ProcessProbe) *HealthReporter {
	return &HealthReporter{registry: registry, hub: hub, probe: probe}
}

func (r *HealthReporter) Health() Health {
	stats := r.registry.Stats()
	h := Health{
		Rooms:        stats.Rooms,
		Participants: stats.Participants,
		Connections:  r.hub.Connections(),
	}
	r.probe.Fill(&h)
	return h
}

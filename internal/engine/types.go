package engine

import "time"

// InterfaceStats is a point-in-time copy of one interface's state. History
// and Window are copied out of the poller so readers never share its
// buffers.
type InterfaceStats struct {
	IfIndex     int
	Name        string
	Description string
	Speed       uint64 // Mbps
	Status      string // "up", "down", "testing"
	InRate      float64
	OutRate     float64
	Utilization float64
	History     []RateSample // oldest first
	Recent      []RateSample // newest first, at most RecentSamples
	Window      WindowStats
	// SampleAge is the time since the newest sample; valid when HasSample.
	SampleAge time.Duration
	HasSample bool
	Stale     bool
	PollError error
	LastPoll  time.Time
}

// TargetStats holds the current state and metrics for a single SNMP target.
type TargetStats struct {
	Host       string
	Label      string
	Interfaces []InterfaceStats
	PollError  error
	LastPoll   time.Time
}

// DashboardSnapshot is a point-in-time view of all targets in a dashboard.
type DashboardSnapshot struct {
	Name      string
	Interval  time.Duration
	Groups    []GroupSnapshot
	LastPoll  time.Time
	PollCount int
}

// GroupSnapshot is a point-in-time view of a target group.
type GroupSnapshot struct {
	Name    string
	Targets []TargetStats
}

// Interfaces calls fn for every interface in display order.
func (s *DashboardSnapshot) Interfaces(fn func(target TargetStats, iface InterfaceStats)) {
	for _, g := range s.Groups {
		for _, t := range g.Targets {
			for _, iface := range t.Interfaces {
				fn(t, iface)
			}
		}
	}
}

// EngineState represents the lifecycle state of a polling engine.
type EngineState int

const (
	EngineStopped EngineState = iota
	EngineRunning
	EngineError
)

func (s EngineState) String() string {
	switch s {
	case EngineRunning:
		return "running"
	case EngineError:
		return "error"
	default:
		return "stopped"
	}
}

// EngineInfo provides summary information about a running engine.
type EngineInfo struct {
	Name       string
	State      EngineState
	LastPoll   time.Time
	PollCount  int
	ErrorCount int
}

// EngineEvent is emitted to subscribers after each poll cycle.
type EngineEvent struct {
	DashboardName string
	Snapshot      *DashboardSnapshot
}

package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tonhe/flo/internal/dashboard"
)

// Manager coordinates multiple Pollers, one per dashboard.
type Manager struct {
	mu      sync.RWMutex
	dial    Dialer
	opts    []Option
	engines map[string]*Poller
}

// NewManager creates an empty Manager. dial and opts are handed to every
// Poller it starts.
func NewManager(dial Dialer, opts ...Option) *Manager {
	return &Manager{
		dial:    dial,
		opts:    opts,
		engines: make(map[string]*Poller),
	}
}

// Start creates and launches a Poller for the given dashboard. The poller
// runs until Stop, StopAll or cancellation of ctx.
func (m *Manager) Start(ctx context.Context, dash *dashboard.Dashboard) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.engines[dash.Name]; exists {
		return fmt.Errorf("engine %q already running", dash.Name)
	}

	p, err := NewPoller(dash, m.dial, m.opts...)
	if err != nil {
		return err
	}

	m.engines[dash.Name] = p
	go p.Run(ctx)
	return nil
}

func (m *Manager) get(name string) (*Poller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.engines[name]
	if !ok {
		return nil, fmt.Errorf("engine %q not found", name)
	}
	return p, nil
}

// Stop halts the Poller for the named dashboard and removes it.
func (m *Manager) Stop(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.engines[name]
	if !ok {
		return fmt.Errorf("engine %q not found", name)
	}

	p.Stop()
	delete(m.engines, name)
	return nil
}

// GetSnapshot returns a point-in-time snapshot for the named dashboard.
func (m *Manager) GetSnapshot(name string) (*DashboardSnapshot, error) {
	p, err := m.get(name)
	if err != nil {
		return nil, err
	}
	return p.Snapshot(), nil
}

// Subscribe returns a channel that receives events for the named dashboard.
func (m *Manager) Subscribe(name string) (<-chan EngineEvent, error) {
	p, err := m.get(name)
	if err != nil {
		return nil, err
	}
	return p.Subscribe(), nil
}

// ResetHistory clears interface history on the named dashboard. An empty
// iface clears every interface of host.
func (m *Manager) ResetHistory(name, host, iface string) error {
	p, err := m.get(name)
	if err != nil {
		return err
	}
	return p.ResetHistory(host, iface)
}

// ListEngines returns summary info for all engines, sorted by name.
func (m *Manager) ListEngines() []EngineInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]EngineInfo, 0, len(m.engines))
	for _, p := range m.engines {
		infos = append(infos, p.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// StopAll halts and removes all running engines.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for name, p := range m.engines {
		p.Stop()
		delete(m.engines, name)
	}
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/tonhe/flo/history"
	"github.com/tonhe/flo/internal/dashboard"
)

// ErrUnknownTarget is returned when a host or interface is not part of the
// dashboard.
var ErrUnknownTarget = errors.New("not on dashboard")

// RecentSamples is how many of the newest samples a snapshot lists
// newest first.
const RecentSamples = 5

// Option configures a Poller.
type Option func(*Poller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger logr.Logger) Option {
	return func(p *Poller) {
		p.log = logger
	}
}

// WithClock replaces time.Now for sample ages and poll timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// WithStaleAfter sets how old the newest sample may get before an
// interface is reported stale. The default is three poll intervals.
func WithStaleAfter(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.staleAfter = d
		}
	}
}

// ifaceState is the poller's private record of one monitored interface.
type ifaceState struct {
	name        string
	found       bool
	ifIndex     int
	description string
	speed       uint64
	status      string
	window      *Window
	prev        CounterSample
	hasPrev     bool
	pollErr     error
	lastPoll    time.Time
}

type targetState struct {
	target   dashboard.Target
	source   Source // owned by the polling goroutine
	resolved bool
	ifaces   []*ifaceState
	pollErr  error
	lastPoll time.Time
}

// reading is the result of querying one interface, gathered before the
// poller lock is taken.
type reading struct {
	counters CounterSample
	status   string
	err      error
}

// Poller runs a polling loop for a single dashboard, collecting counters
// from all configured targets at the dashboard's interval and keeping a
// rate Window per interface.
type Poller struct {
	mu          sync.RWMutex
	pollMu      sync.Mutex
	dash        *dashboard.Dashboard
	dial        Dialer
	log         logr.Logger
	now         func() time.Time
	staleAfter  time.Duration
	targets     map[string]*targetState
	subscribers []chan EngineEvent
	closed      bool
	stopCh      chan struct{}
	stopOnce    sync.Once
	state       EngineState
	pollCount   int
	errorCount  int
	lastPoll    time.Time
}

// NewPoller creates a Poller for dash. Every interface gets an empty
// window of dash.MaxHistory samples so snapshots are complete before the
// first poll.
func NewPoller(dash *dashboard.Dashboard, dial Dialer, opts ...Option) (*Poller, error) {
	if dash == nil {
		return nil, errors.New("dashboard can't be nil")
	}
	if dial == nil {
		return nil, errors.New("dialer can't be nil")
	}
	if err := dash.Validate(); err != nil {
		return nil, fmt.Errorf("dashboard %q: %w", dash.Name, err)
	}

	p := &Poller{
		dash:       dash,
		dial:       dial,
		log:        logr.Discard(),
		now:        time.Now,
		staleAfter: 3 * dash.Interval,
		targets:    make(map[string]*targetState),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithValues("dashboard", dash.Name)

	for _, group := range dash.Groups {
		for _, target := range group.Targets {
			ts := &targetState{target: target}
			for _, name := range target.Interfaces {
				w, err := NewWindow(dash.MaxHistory, history.WithClock(p.now))
				if err != nil {
					return nil, err
				}
				ts.ifaces = append(ts.ifaces, &ifaceState{name: name, window: w})
			}
			p.targets[target.Host] = ts
		}
	}
	return p, nil
}

// Run polls immediately and then on every tick until ctx is cancelled or
// Stop is called. Sources are closed and subscriber channels are closed
// on return.
func (p *Poller) Run(ctx context.Context) {
	defer p.cleanup()
	select {
	case <-p.stopCh:
		return
	default:
	}

	p.setState(EngineRunning)
	p.log.Info("poller started", "interval", p.dash.Interval, "maxHistory", p.dash.MaxHistory)

	ticker := time.NewTicker(p.dash.Interval)
	defer ticker.Stop()

	p.Poll(ctx)
	for {
		select {
		case <-ticker.C:
			p.Poll(ctx)
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Poll executes a single poll cycle across all targets.
func (p *Poller) Poll(ctx context.Context) {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	failed, total := 0, 0
	for _, group := range p.dash.Groups {
		for _, target := range group.Targets {
			if ctx.Err() != nil {
				return
			}
			total++
			if !p.pollTarget(ctx, p.targets[target.Host]) {
				failed++
			}
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pollCount++
	p.lastPoll = p.now()
	if p.state != EngineStopped {
		p.state = EngineRunning
		if total > 0 && failed == total {
			p.state = EngineError
		}
	}
	p.notify()
}

// pollTarget reads every interface of one target and reports whether the
// target answered. A source that fails completely is dropped so the next
// cycle dials and resolves again.
func (p *Poller) pollTarget(ctx context.Context, ts *targetState) bool {
	log := p.log.WithValues("host", ts.target.Host)

	if ts.source == nil {
		src, err := p.dial(ctx, ts.target)
		if err != nil {
			p.failTarget(ts, err)
			return false
		}
		ts.source = src
		ts.resolved = false
	}

	if !ts.resolved {
		found, err := ts.source.Interfaces()
		if err != nil {
			p.dropSource(ts)
			p.failTarget(ts, fmt.Errorf("resolve interfaces: %w", err))
			return false
		}
		p.mu.Lock()
		p.applyResolution(ts, found)
		p.mu.Unlock()
		ts.resolved = true
	}

	readings := make([]reading, len(ts.ifaces))
	queried, failed := 0, 0
	var lastErr error
	for i, is := range ts.ifaces {
		if !is.found {
			readings[i].err = fmt.Errorf("interface %q %w", is.name, ErrUnknownTarget)
			continue
		}
		queried++
		counters, err := ts.source.Counters(is.ifIndex)
		if err != nil {
			readings[i].err = err
			lastErr = err
			failed++
			continue
		}
		status, err := ts.source.Status(is.ifIndex)
		if err != nil {
			log.V(1).Info("status query failed", "interface", is.name, "error", err.Error())
		}
		readings[i] = reading{counters: counters, status: status}
	}

	if queried > 0 && failed == queried {
		p.dropSource(ts)
		p.failTarget(ts, lastErr)
		return false
	}

	now := p.now()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, r := range readings {
		p.record(ts, ts.ifaces[i], r, now)
	}
	ts.lastPoll = now
	ts.pollErr = nil
	return true
}

// applyResolution maps configured interface names to ifIndex values.
// An interface that comes back under a different ifIndex is a different
// counter, so its history is discarded. Caller holds p.mu.
func (p *Poller) applyResolution(ts *targetState, found map[string]DiscoveredInterface) {
	for _, is := range ts.ifaces {
		info, ok := found[is.name]
		if !ok {
			is.found = false
			continue
		}
		if is.ifIndex != 0 && is.ifIndex != info.IfIndex {
			p.log.Info("interface index changed, resetting history",
				"host", ts.target.Host, "interface", is.name, "from", is.ifIndex, "to", info.IfIndex)
			is.window.Reset()
			is.hasPrev = false
		}
		is.found = true
		is.ifIndex = info.IfIndex
		is.speed = info.Speed
		is.description = info.Description
	}
}

// record turns a reading into a rate sample. Caller holds p.mu.
func (p *Poller) record(ts *targetState, is *ifaceState, r reading, now time.Time) {
	if r.err != nil {
		is.pollErr = r.err
		p.errorCount++
		return
	}
	is.status = r.status
	if is.hasPrev {
		rate, err := CalculateRate(is.prev, r.counters)
		switch {
		case err == nil:
			if old, evicted := is.window.Add(rate); evicted {
				p.log.V(2).Info("sample evicted", "host", ts.target.Host, "interface", is.name, "sampledAt", old.Timestamp)
			}
		case errors.Is(err, ErrCounterWrap):
			p.log.V(1).Info("counter went backwards, skipping sample", "host", ts.target.Host, "interface", is.name)
		}
	}
	is.prev, is.hasPrev = r.counters, true
	is.pollErr = nil
	is.lastPoll = now
}

func (p *Poller) failTarget(ts *targetState, err error) {
	p.log.Error(err, "poll failed", "host", ts.target.Host)
	p.mu.Lock()
	defer p.mu.Unlock()
	ts.pollErr = err
	p.errorCount++
}

func (p *Poller) dropSource(ts *targetState) {
	if ts.source == nil {
		return
	}
	if err := ts.source.Close(); err != nil {
		p.log.V(1).Info("close source", "host", ts.target.Host, "error", err.Error())
	}
	ts.source = nil
	ts.resolved = false
}

// ResetHistory discards the samples of one interface, or of every
// interface on host when iface is empty. The previous counter reading is
// kept so the next poll still yields a rate.
func (p *Poller) ResetHistory(host, iface string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts, ok := p.targets[host]
	if !ok {
		return fmt.Errorf("host %s %w", host, ErrUnknownTarget)
	}
	matched := false
	for _, is := range ts.ifaces {
		if iface == "" || is.name == iface {
			is.window.Reset()
			matched = true
		}
	}
	if !matched {
		return fmt.Errorf("interface %s on %s %w", iface, host, ErrUnknownTarget)
	}
	p.notify()
	return nil
}

// Snapshot returns a point-in-time copy of all dashboard data.
// It is safe to call from any goroutine.
func (p *Poller) Snapshot() *DashboardSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

// snapshotLocked copies every window out of the poller. The caller must
// hold at least a read lock on p.mu.
func (p *Poller) snapshotLocked() *DashboardSnapshot {
	snap := &DashboardSnapshot{
		Name:      p.dash.Name,
		Interval:  p.dash.Interval,
		LastPoll:  p.lastPoll,
		PollCount: p.pollCount,
	}

	for _, group := range p.dash.Groups {
		gs := GroupSnapshot{Name: group.Name}
		for _, target := range group.Targets {
			ts := p.targets[target.Host]
			stats := TargetStats{
				Host:      ts.target.Host,
				Label:     ts.target.Label,
				PollError: ts.pollErr,
				LastPoll:  ts.lastPoll,
			}
			for _, is := range ts.ifaces {
				stats.Interfaces = append(stats.Interfaces, p.interfaceStats(is))
			}
			gs.Targets = append(gs.Targets, stats)
		}
		snap.Groups = append(snap.Groups, gs)
	}
	return snap
}

func (p *Poller) interfaceStats(is *ifaceState) InterfaceStats {
	st := InterfaceStats{
		IfIndex:     is.ifIndex,
		Name:        is.name,
		Description: is.description,
		Speed:       is.speed,
		Status:      is.status,
		History:     is.window.Samples(),
		Recent:      is.window.Recent(RecentSamples),
		Window:      is.window.Stats(),
		PollError:   is.pollErr,
		LastPoll:    is.lastPoll,
	}
	if latest, ok := is.window.Latest(); ok {
		st.InRate = latest.InRate
		st.OutRate = latest.OutRate
		st.Utilization = CalculateUtilization(latest.InRate, latest.OutRate, is.speed)
	}
	if age, ok := is.window.Age(); ok {
		st.SampleAge = age
		st.HasSample = true
		st.Stale = age > p.staleAfter
	}
	return st
}

// Subscribe returns a channel that receives an event after each poll
// cycle. The channel is closed when the poller stops.
func (p *Poller) Subscribe() <-chan EngineEvent {
	ch := make(chan EngineEvent, 1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		close(ch)
		return ch
	}
	p.subscribers = append(p.subscribers, ch)
	return ch
}

// notify sends the current snapshot to all subscribers without blocking;
// a subscriber that has not drained its last event misses this one.
// Must be called while holding the write lock on p.mu.
func (p *Poller) notify() {
	if p.closed || len(p.subscribers) == 0 {
		return
	}
	event := EngineEvent{DashboardName: p.dash.Name, Snapshot: p.snapshotLocked()}
	for _, ch := range p.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Info returns summary information about this engine.
func (p *Poller) Info() EngineInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return EngineInfo{
		Name:       p.dash.Name,
		State:      p.state,
		LastPoll:   p.lastPoll,
		PollCount:  p.pollCount,
		ErrorCount: p.errorCount,
	}
}

func (p *Poller) setState(s EngineState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = s
}

// Stop signals the polling loop to exit. It is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopCh)
	})
}

// cleanup closes all sources and subscriber channels.
func (p *Poller) cleanup() {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()
	for _, ts := range p.targets {
		p.dropSource(ts)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = EngineStopped
	p.closed = true
	for _, ch := range p.subscribers {
		close(ch)
	}
	p.subscribers = nil
	p.log.Info("poller stopped", "polls", p.pollCount, "errors", p.errorCount)
}

package engine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManagerLifecycle(t *testing.T) {
	clock := newFakeClock()
	dialer := &fakeDialer{src: newFakeSource(clock)}
	m := NewManager(dialer.Dial, WithClock(clock.Now))
	ctx := context.Background()

	if err := m.Start(ctx, testDashboard(5)); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if err := m.Start(ctx, testDashboard(5)); err == nil {
		t.Error("expected error starting the same dashboard twice")
	}

	snap, err := m.GetSnapshot("lab")
	if err != nil {
		t.Fatalf("GetSnapshot() error: %v", err)
	}
	if snap.Name != "lab" {
		t.Errorf("expected snapshot for lab, got %q", snap.Name)
	}

	infos := m.ListEngines()
	if len(infos) != 1 || infos[0].Name != "lab" {
		t.Errorf("unexpected engines: %+v", infos)
	}

	if err := m.ResetHistory("lab", "10.0.0.1", "Gi0/1"); err != nil {
		t.Errorf("ResetHistory() error: %v", err)
	}
	if err := m.ResetHistory("lab", "10.0.0.1", "nope"); !errors.Is(err, ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}

	ch, err := m.Subscribe("lab")
	if err != nil {
		t.Fatalf("Subscribe() error: %v", err)
	}

	if err := m.Stop("lab"); err != nil {
		t.Fatalf("Stop() error: %v", err)
	}
	if _, err := m.GetSnapshot("lab"); err == nil {
		t.Error("expected error for stopped engine")
	}
	if err := m.Stop("lab"); err == nil {
		t.Error("expected error stopping unknown engine")
	}

	// the subscription is closed once the poller winds down
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("subscription not closed after Stop")
		}
	}
}

func TestManagerStopAll(t *testing.T) {
	clock := newFakeClock()
	dialer := &fakeDialer{src: newFakeSource(clock)}
	m := NewManager(dialer.Dial, WithClock(clock.Now))

	a := testDashboard(5)
	b := testDashboard(5)
	b.Name = "edge"
	if err := m.Start(context.Background(), a); err != nil {
		t.Fatal(err)
	}
	if err := m.Start(context.Background(), b); err != nil {
		t.Fatal(err)
	}

	infos := m.ListEngines()
	if len(infos) != 2 || infos[0].Name != "edge" || infos[1].Name != "lab" {
		t.Errorf("expected engines sorted by name, got %+v", infos)
	}

	m.StopAll()
	if got := len(m.ListEngines()); got != 0 {
		t.Errorf("expected no engines after StopAll, got %d", got)
	}
}

func TestManagerRejectsInvalidDashboard(t *testing.T) {
	m := NewManager((&fakeDialer{}).Dial)
	if err := m.Start(context.Background(), testDashboard(0)); err == nil {
		t.Error("expected error for invalid dashboard")
	}
	if len(m.ListEngines()) != 0 {
		t.Error("invalid dashboard should not be registered")
	}
}

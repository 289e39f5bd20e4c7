package components

import (
	"errors"
	"testing"

	"github.com/tonhe/flo/internal/engine"
)

func TestSnapshotHealth(t *testing.T) {
	snap := &engine.DashboardSnapshot{
		Groups: []engine.GroupSnapshot{{
			Targets: []engine.TargetStats{
				{Interfaces: []engine.InterfaceStats{
					{Name: "ok"},
					{Name: "stale", Stale: true},
					{Name: "failed", PollError: errors.New("timeout")},
				}},
				{PollError: errors.New("unreachable"), Interfaces: []engine.InterfaceStats{{Name: "down"}}},
			},
		}},
	}
	h := SnapshotHealth(snap)
	if h != (Health{OK: 1, Stale: 1, Total: 4}) {
		t.Errorf("unexpected health: %+v", h)
	}
	if SnapshotHealth(nil) != (Health{}) {
		t.Error("expected zero health for nil snapshot")
	}
}

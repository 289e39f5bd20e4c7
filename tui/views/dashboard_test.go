package views

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui/styles"
)

func testSnapshot() *engine.DashboardSnapshot {
	t0 := time.Unix(1000, 0)
	return &engine.DashboardSnapshot{
		Name:     "core",
		Interval: 10 * time.Second,
		Groups: []engine.GroupSnapshot{{
			Name: "dc1",
			Targets: []engine.TargetStats{{
				Host:  "10.0.0.1",
				Label: "sw1",
				Interfaces: []engine.InterfaceStats{
					{Name: "Gi0/1", Status: "up", History: []engine.RateSample{
						{Timestamp: t0, InRate: 10, OutRate: 30},
						{Timestamp: t0.Add(10 * time.Second), InRate: 50, OutRate: 20},
					}},
					{Name: "Gi0/2", Status: "up", Stale: true},
				},
			}},
		}},
	}
}

func TestExtractSparkDataTakesBusierDirection(t *testing.T) {
	hist := testSnapshot().Groups[0].Targets[0].Interfaces[0].History
	got := extractSparkData(hist, 10)
	if len(got) != 2 || got[0] != 30 || got[1] != 50 {
		t.Errorf("expected [30 50], got %v", got)
	}
}

func TestExtractSparkDataKeepsNewest(t *testing.T) {
	var hist []engine.RateSample
	for i := range 5 {
		hist = append(hist, engine.RateSample{InRate: float64(i)})
	}
	got := extractSparkData(hist, 2)
	if len(got) != 2 || got[0] != 3 || got[1] != 4 {
		t.Errorf("expected newest two samples [3 4], got %v", got)
	}
	if extractSparkData(nil, 5) != nil {
		t.Error("expected nil for empty history")
	}
}

func TestDashboardSelectionFollowsCursor(t *testing.T) {
	v := NewDashboardView(styles.DefaultTheme)
	v.SetSnapshot(testSnapshot())

	target, iface, ok := v.Selected()
	if !ok || target.Host != "10.0.0.1" || iface.Name != "Gi0/1" {
		t.Fatalf("expected first interface selected, got %q %q %v", target.Host, iface.Name, ok)
	}

	v.cursor = 5
	v.SetSnapshot(testSnapshot())
	if _, iface, _ := v.Selected(); iface.Name != "Gi0/2" {
		t.Errorf("expected cursor clamped to last row, got %q", iface.Name)
	}

	v.SetSnapshot(nil)
	if _, _, ok := v.Selected(); ok {
		t.Error("expected no selection without a snapshot")
	}
}

func TestRowStatus(t *testing.T) {
	sty := styles.NewStyles(styles.DefaultTheme)
	failed := engine.TargetStats{PollError: errors.New("timeout")}

	tests := []struct {
		name   string
		target engine.TargetStats
		iface  engine.InterfaceStats
		want   string
	}{
		{"up", engine.TargetStats{}, engine.InterfaceStats{Status: "up"}, "up"},
		{"down", engine.TargetStats{}, engine.InterfaceStats{Status: "down"}, "down"},
		{"pending", engine.TargetStats{}, engine.InterfaceStats{}, "..."},
		{"stale beats up", engine.TargetStats{}, engine.InterfaceStats{Status: "up", Stale: true}, "stale"},
		{"error beats stale", failed, engine.InterfaceStats{Status: "up", Stale: true}, "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := rowStatus(sty, tt.target, tt.iface); got != tt.want {
				t.Errorf("rowStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetailListsRecentNewestFirst(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	iface := engine.InterfaceStats{
		Name: "Gi0/1",
		Recent: []engine.RateSample{
			{Timestamp: t0.Add(20 * time.Second), InRate: 3000},
			{Timestamp: t0.Add(10 * time.Second), InRate: 2000},
		},
	}
	v := NewDetailView(styles.DefaultTheme)
	out := v.renderWindowPanel(&iface)

	newer := strings.Index(out, "12:00:20")
	older := strings.Index(out, "12:00:10")
	if newer < 0 || older < 0 {
		t.Fatalf("expected both sample times in panel, got:\n%s", out)
	}
	if newer > older {
		t.Error("expected the newest sample listed first")
	}
}

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui/styles"
)

// Health counts interfaces by condition for the status bar.
type Health struct {
	OK, Stale, Total int
}

// SnapshotHealth tallies the interfaces of snap. An interface is OK when
// its last poll succeeded and it is not stale.
func SnapshotHealth(snap *engine.DashboardSnapshot) Health {
	var h Health
	if snap == nil {
		return h
	}
	snap.Interfaces(func(t engine.TargetStats, iface engine.InterfaceStats) {
		h.Total++
		switch {
		case t.PollError != nil || iface.PollError != nil:
		case iface.Stale:
			h.Stale++
		default:
			h.OK++
		}
	})
	return h
}

// RenderStatusBar renders the two-line footer: poll cadence, history depth
// and interface health on top, key bindings below.
func RenderStatusBar(theme styles.Theme, snap *engine.DashboardSnapshot, depth int, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)
	seg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")

	interval, lastStr := "-", "never"
	if snap != nil {
		interval = snap.Interval.String()
		if !snap.LastPoll.IsZero() {
			lastStr = snap.LastPoll.Format("15:04:05")
		}
	}
	h := SnapshotHealth(snap)

	healthColor := theme.Base0B
	if h.OK < h.Total {
		healthColor = theme.Base0A
	}
	healthText := fmt.Sprintf("%d/%d OK", h.OK, h.Total)
	if h.Stale > 0 {
		healthText += fmt.Sprintf(", %d stale", h.Stale)
	}

	top := bgStyle.Render(" ") +
		seg.Render("poll: "+interval) + sep +
		seg.Render("last: "+lastStr) + sep +
		seg.Render(fmt.Sprintf("history: %d", depth)) + sep +
		lipgloss.NewStyle().Foreground(healthColor).Background(bg).Render(healthText)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")
	bind := func(k, desc string) string {
		return keyStyle.Render(k) + descStyle.Render(":"+desc) + spacer
	}
	keys := bgStyle.Render(" ") +
		bind("enter", "detail") +
		bind("d", "dashboards") +
		bind("c", "clear") +
		bind("t", "theme") +
		bind("?", "help") +
		bind("q", "quit")

	return lipgloss.JoinVertical(lipgloss.Left, fill(bgStyle, top, width), fill(bgStyle, keys, width))
}

func fill(bg lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}

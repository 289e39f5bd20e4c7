package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui/components"
	"github.com/tonhe/flo/tui/keys"
	"github.com/tonhe/flo/tui/styles"
)

// Column width constants (minimum widths).
const (
	colDevice    = 16
	colInterface = 18
	colStatus    = 8
	colIn        = 10
	colOut       = 10
	colUtil      = 8
	colSparkMin  = 12
)

// DashboardView is the main monitoring table: one row per interface,
// grouped by target group, with a trend sparkline drawn from the
// interface's rate history.
type DashboardView struct {
	theme    styles.Theme
	sty      *styles.Styles
	snapshot *engine.DashboardSnapshot
	cursor   int
	rows     int
	width    int
	height   int
}

// NewDashboardView creates a new DashboardView with the given theme.
func NewDashboardView(theme styles.Theme) DashboardView {
	return DashboardView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme restyles the view.
func (v *DashboardView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// Update handles key messages for cursor navigation within the dashboard.
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < v.rows-1 {
				v.cursor++
			}
		}
	}
	return v, nil
}

// SetSnapshot updates the dashboard data and clamps the cursor.
func (v *DashboardView) SetSnapshot(snap *engine.DashboardSnapshot) {
	v.snapshot = snap
	v.rows = 0
	if snap != nil {
		snap.Interfaces(func(engine.TargetStats, engine.InterfaceStats) { v.rows++ })
	}
	v.cursor = max(min(v.cursor, v.rows-1), 0)
}

// Selected returns the target and interface under the cursor.
func (v DashboardView) Selected() (engine.TargetStats, engine.InterfaceStats, bool) {
	var (
		target engine.TargetStats
		iface  engine.InterfaceStats
		found  bool
	)
	if v.snapshot == nil {
		return target, iface, false
	}
	i := 0
	v.snapshot.Interfaces(func(t engine.TargetStats, s engine.InterfaceStats) {
		if i == v.cursor {
			target, iface, found = t, s, true
		}
		i++
	})
	return target, iface, found
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the dashboard view.
func (v DashboardView) View() string {
	if v.snapshot == nil || len(v.snapshot.Groups) == 0 {
		return v.renderEmpty()
	}
	return v.renderTable()
}

// columnWidths gives the sparkline column all remaining space.
func (v DashboardView) columnWidths() (device, iface, status, inCol, outCol, util, spark int) {
	fixed := colDevice + colInterface + colStatus + colIn + colOut + colUtil
	return colDevice, colInterface, colStatus, colIn, colOut, colUtil, max(v.width-fixed, colSparkMin)
}

// renderTable renders the table header, group headers and interface rows,
// scrolled so the cursor row is visible.
func (v DashboardView) renderTable() string {
	wDevice, wIface, wStatus, wIn, wOut, wUtil, wSpark := v.columnWidths()

	h := v.sty.TableHeader
	header := h.Render(padRight("Device", wDevice)) +
		h.Render(padRight("Interface", wIface)) +
		h.Render(padRight("Status", wStatus)) +
		h.Render(padLeft("In", wIn)) +
		h.Render(padLeft("Out", wOut)) +
		h.Render(padLeft("Util", wUtil)) +
		h.Render(padRight("Trend", wSpark))

	var rows []string
	cursorRow, ifaceIdx := 0, 0
	for _, g := range v.snapshot.Groups {
		rows = append(rows, v.sty.GroupHeader.Render(padRight(fmt.Sprintf("--- %s ---", g.Name), v.width)))
		for _, t := range g.Targets {
			for _, iface := range t.Interfaces {
				selected := ifaceIdx == v.cursor
				if selected {
					cursorRow = len(rows)
				}
				rows = append(rows, v.renderInterfaceRow(t, iface,
					wDevice, wIface, wStatus, wIn, wOut, wUtil, wSpark, selected))
				ifaceIdx++
			}
		}
	}

	visible := max(v.height-1, 1)
	start := 0
	if cursorRow >= visible {
		start = cursorRow - visible + 1
	}
	end := min(start+visible, len(rows))
	start = max(end-visible, 0)

	return strings.Join(append([]string{header}, rows[start:end]...), "\n")
}

// renderInterfaceRow renders a single interface metrics row.
func (v DashboardView) renderInterfaceRow(
	target engine.TargetStats,
	iface engine.InterfaceStats,
	wDevice, wIface, wStatus, wIn, wOut, wUtil, wSpark int,
	selected bool,
) string {
	rowStyle := v.sty.TableRow
	// cell keeps a cell's own foreground but takes the selection background
	cell := func(st lipgloss.Style) lipgloss.Style {
		if selected {
			return st.Background(v.theme.Base02)
		}
		return st
	}
	if selected {
		rowStyle = v.sty.TableRowSel
	}

	device := rowStyle.Render(padRight(truncate(target.Label, wDevice-1), wDevice))
	ifName := rowStyle.Render(padRight(truncate(iface.Name, wIface-1), wIface))

	statusText, statusStyle := rowStatus(v.sty, target, iface)
	status := cell(statusStyle).Render(padRight(statusText, wStatus))

	in := rowStyle.Render(padLeft(components.FormatRate(iface.InRate), wIn))
	out := rowStyle.Render(padLeft(components.FormatRate(iface.OutRate), wOut))

	utilStyle := v.sty.UtilLow
	switch {
	case iface.Utilization >= 80:
		utilStyle = v.sty.UtilHigh
	case iface.Utilization >= 50:
		utilStyle = v.sty.UtilMid
	}
	util := cell(utilStyle).Render(padLeft(fmt.Sprintf("%.1f%%", iface.Utilization), wUtil))

	spark := cell(v.sty.SparklineStyle).Render(
		components.Sparkline(extractSparkData(iface.History, wSpark), wSpark))

	return device + ifName + status + in + out + util + spark
}

// rowStatus picks the status column text. Poll failures and stale data
// override the operational status reported by the device.
func rowStatus(sty *styles.Styles, target engine.TargetStats, iface engine.InterfaceStats) (string, lipgloss.Style) {
	switch {
	case target.PollError != nil || iface.PollError != nil:
		return "error", sty.StatusDown
	case iface.Stale:
		return "stale", sty.StatusStale
	case iface.Status == "up":
		return "up", sty.StatusUp
	case iface.Status == "down":
		return "down", sty.StatusDown
	case iface.Status == "":
		return "...", sty.StatusWarn
	default:
		return iface.Status, sty.StatusWarn
	}
}

// renderEmpty renders a centered message when no dashboard is loaded.
func (v DashboardView) renderEmpty() string {
	msgStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Align(lipgloss.Center)

	msg := lipgloss.JoinVertical(lipgloss.Center,
		"",
		msgStyle.Render("No dashboard loaded"),
		"",
		msgStyle.Render(fmt.Sprintf("Press %s to open one", v.sty.Key.Render("[d]"))),
		msgStyle.Render("or run: flo --dashboard NAME"),
		"",
	)

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

// extractSparkData takes the busier direction of each of the newest
// maxWidth samples.
func extractSparkData(history []engine.RateSample, maxWidth int) []float64 {
	if len(history) > maxWidth {
		history = history[len(history)-maxWidth:]
	}
	if len(history) == 0 {
		return nil
	}
	data := make([]float64, len(history))
	for i, s := range history {
		data[i] = s.Max()
	}
	return data
}

// padRight pads s with spaces on the right to the given width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

// padLeft pads s with spaces on the left to the given width.
func padLeft(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

// truncate shortens s to maxLen characters, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

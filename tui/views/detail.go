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

// DetailView is a split-screen view showing interface information and
// window statistics at the top and In/Out traffic charts at the bottom.
type DetailView struct {
	theme      styles.Theme
	sty        *styles.Styles
	target     engine.TargetStats
	ifaceStats *engine.InterfaceStats
	width      int
	height     int
}

// NewDetailView creates a new DetailView with the given theme.
func NewDetailView(theme styles.Theme) DetailView {
	return DetailView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme restyles the view.
func (v *DetailView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// SetInterface updates the detail view with new interface data.
func (v *DetailView) SetInterface(target engine.TargetStats, stats *engine.InterfaceStats) {
	v.target = target
	v.ifaceStats = stats
}

// Interface returns the host and interface name being shown.
func (v DetailView) Interface() (host, name string, ok bool) {
	if v.ifaceStats == nil {
		return "", "", false
	}
	return v.target.Host, v.ifaceStats.Name, true
}

// SetSize updates the available dimensions for the view.
func (v *DetailView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// Update handles key messages for the detail view. The third return value
// indicates whether the user wants to go back (Esc pressed).
func (v DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd, bool) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, keys.DefaultKeyMap.Escape) {
		return v, nil, true
	}
	return v, nil, false
}

// View renders the detail view with an info panel and traffic charts.
func (v DetailView) View() string {
	if v.ifaceStats == nil {
		return v.renderEmpty()
	}
	return v.renderDetail()
}

func (v DetailView) renderEmpty() string {
	msg := lipgloss.NewStyle().
		Foreground(v.theme.Base04).
		Align(lipgloss.Center).
		Render("No interface selected")
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

func (v DetailView) renderDetail() string {
	iface := v.ifaceStats

	info := lipgloss.JoinHorizontal(lipgloss.Top,
		v.renderInfoPanel(iface),
		"    ",
		v.renderWindowPanel(iface),
	)
	infoHeight := lipgloss.Height(info)

	chartHeight := max(v.height-infoHeight-2, 6)
	chartWidth := max((v.width-3)/2, 15)

	inData, outData := splitRates(iface.History)
	inChart := components.RenderChart(inData, iface.Window.AvgIn, chartWidth, chartHeight, "In Traffic")
	outChart := components.RenderChart(outData, iface.Window.AvgOut, chartWidth, chartHeight, "Out Traffic")

	sep := v.sty.Dim.Render(strings.TrimSuffix(strings.Repeat(" | \n", chartHeight), "\n"))
	charts := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Foreground(v.theme.Base0B).Render(inChart),
		sep,
		lipgloss.NewStyle().Foreground(v.theme.Base0C).Render(outChart),
	)

	return lipgloss.JoinVertical(lipgloss.Left, info, "", charts, v.renderHelp())
}

func (v DetailView) row(label, value string) string {
	return "  " + v.sty.Label.Render(label) + value
}

func (v DetailView) renderInfoPanel(iface *engine.InterfaceStats) string {
	statusText, statusStyle := rowStatus(v.sty, v.target, *iface)

	utilStyle := v.sty.UtilLow
	switch {
	case iface.Utilization >= 80:
		utilStyle = v.sty.UtilHigh
	case iface.Utilization >= 50:
		utilStyle = v.sty.UtilMid
	}

	age := "no samples"
	if iface.HasSample {
		age = components.FormatAge(iface.SampleAge) + " ago"
	}
	ageStyle := v.sty.Value
	if iface.Stale {
		ageStyle = v.sty.StatusStale
	}

	rows := []string{
		"",
		v.row("Device:", v.sty.Highlight.Render(v.target.Label)),
		v.row("Interface:", v.sty.Highlight.Render(iface.Name)),
		v.row("Description:", v.sty.Value.Render(iface.Description)),
		v.row("Status:", statusStyle.Render(statusText)),
		v.row("Speed:", v.sty.Value.Render(formatSpeed(iface.Speed))),
		v.row("Current In:", v.sty.Value.Render(components.FormatRate(iface.InRate))),
		v.row("Current Out:", v.sty.Value.Render(components.FormatRate(iface.OutRate))),
		v.row("Utilization:", utilStyle.Render(fmt.Sprintf("%.1f%%", iface.Utilization))),
		v.row("Last sample:", ageStyle.Render(age)),
	}
	if err := firstErr(v.target.PollError, iface.PollError); err != nil {
		rows = append(rows, v.row("Error:", v.sty.StatusDown.Render(truncate(err.Error(), 60))))
	}
	return strings.Join(rows, "\n")
}

// renderWindowPanel shows the statistics over the retained window and the
// newest samples, newest first.
func (v DetailView) renderWindowPanel(iface *engine.InterfaceStats) string {
	w := iface.Window
	rows := []string{
		"",
		v.row("Window:", v.sty.Value.Render(fmt.Sprintf("%d/%d samples", w.Samples, w.Capacity))),
		v.row("Evicted:", v.sty.Value.Render(fmt.Sprintf("%d", w.Evicted))),
		v.row("Avg In/Out:", v.sty.Value.Render(
			components.FormatRate(w.AvgIn)+" / "+components.FormatRate(w.AvgOut))),
		v.row("Peak In/Out:", v.sty.Value.Render(
			components.FormatRate(w.PeakIn)+" / "+components.FormatRate(w.PeakOut))),
		"",
		"  " + v.sty.Dim.Render("Recent samples"),
	}
	if len(iface.Recent) == 0 {
		rows = append(rows, "  "+v.sty.Dim.Render("(none)"))
	}
	for _, s := range iface.Recent {
		rows = append(rows, fmt.Sprintf("  %s  %s",
			v.sty.Dim.Render(s.Timestamp.Format("15:04:05")),
			v.sty.Value.Render(fmt.Sprintf("%8s in %8s out",
				components.FormatRate(s.InRate), components.FormatRate(s.OutRate)))))
	}
	return strings.Join(rows, "\n")
}

func (v DetailView) renderHelp() string {
	k := v.sty.Key.Render
	return v.sty.Dim.Render(fmt.Sprintf("  %s back  %s clear history  %s clear device  %s theme",
		k("[esc]"), k("[c]"), k("[C]"), k("[t]")))
}

// splitRates pulls the In and Out series out of a rate history.
func splitRates(history []engine.RateSample) (inData, outData []float64) {
	if len(history) == 0 {
		return nil, nil
	}
	inData = make([]float64, len(history))
	outData = make([]float64, len(history))
	for i, s := range history {
		inData[i] = s.InRate
		outData[i] = s.OutRate
	}
	return inData, outData
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// formatSpeed converts an interface speed in Mbps to a human-readable string.
func formatSpeed(speedMbps uint64) string {
	switch {
	case speedMbps == 0:
		return "unknown"
	case speedMbps >= 1000000:
		return fmt.Sprintf("%.0fT", float64(speedMbps)/1000000)
	case speedMbps >= 1000:
		return fmt.Sprintf("%.0fG", float64(speedMbps)/1000)
	default:
		return fmt.Sprintf("%dM", speedMbps)
	}
}

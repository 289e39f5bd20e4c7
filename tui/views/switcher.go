package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/flo/internal/dashboard"
	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui/keys"
	"github.com/tonhe/flo/tui/styles"
)

// SwitcherAction describes what the app should do after a switcher key press.
type SwitcherAction int

const (
	// ActionNone means no action needed.
	ActionNone SwitcherAction = iota
	// ActionClose means the user wants to dismiss the switcher.
	ActionClose
	// ActionSwitch means the user selected a dashboard to switch to.
	ActionSwitch
	// ActionStop means the user wants to stop the selected engine.
	ActionStop
)

// SwitcherItem represents a single dashboard entry in the switcher list.
type SwitcherItem struct {
	Name     string
	FilePath string
	Running  bool
	Info     engine.EngineInfo
}

// SwitcherView is a modal overlay that lists dashboards and lets the user
// switch between them or stop engines.
type SwitcherView struct {
	theme  styles.Theme
	sty    *styles.Styles
	items  []SwitcherItem
	err    error
	cursor int
	width  int
	height int
}

// NewSwitcherView creates a new SwitcherView with the given theme.
func NewSwitcherView(theme styles.Theme) SwitcherView {
	return SwitcherView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme restyles the overlay.
func (v *SwitcherView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// Refresh scans the dashboards directory and checks which engines are running.
func (v *SwitcherView) Refresh(dashDir string, mgr *engine.Manager) {
	v.items = nil
	names, err := dashboard.ListDashboards(dashDir)
	v.err = err
	if err != nil {
		return
	}

	running := make(map[string]engine.EngineInfo)
	for _, info := range mgr.ListEngines() {
		running[info.Name] = info
	}

	for _, name := range names {
		item := SwitcherItem{
			Name:     name,
			FilePath: dashboard.Resolve(dashDir, name),
		}
		item.Info, item.Running = running[name]
		v.items = append(v.items, item)
	}
	v.cursor = max(min(v.cursor, len(v.items)-1), 0)
}

// SetSize updates the available dimensions for the overlay.
func (v *SwitcherView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// SelectedItem returns the currently highlighted item, or nil if the list is
// empty.
func (v *SwitcherView) SelectedItem() *SwitcherItem {
	if len(v.items) == 0 {
		return nil
	}
	return &v.items[v.cursor]
}

// Update handles key messages for the switcher overlay.
func (v SwitcherView) Update(msg tea.Msg) (SwitcherView, tea.Cmd, SwitcherAction) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil, ActionNone
	}
	km := keys.DefaultKeyMap
	switch {
	case key.Matches(msgKey, km.Escape), key.Matches(msgKey, km.Dashboard):
		return v, nil, ActionClose
	case key.Matches(msgKey, km.Up):
		if v.cursor > 0 {
			v.cursor--
		}
	case key.Matches(msgKey, km.Down):
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case key.Matches(msgKey, km.Enter):
		if len(v.items) > 0 {
			return v, nil, ActionSwitch
		}
	case key.Matches(msgKey, km.Stop):
		if len(v.items) > 0 && v.items[v.cursor].Running {
			return v, nil, ActionStop
		}
	}
	return v, nil, ActionNone
}

// View renders the switcher as a centered modal box.
func (v SwitcherView) View() string {
	modalWidth := 44
	if v.width > 60 {
		modalWidth = min(v.width/2, 64)
	}
	modalWidth = max(modalWidth, 30)
	innerWidth := modalWidth - 6 // 2 border + 4 padding

	var lines []string
	switch {
	case v.err != nil:
		lines = append(lines, v.sty.StatusDown.Render(truncate(v.err.Error(), innerWidth)))
	case len(v.items) == 0:
		lines = append(lines,
			v.sty.Dim.Render("No dashboards found."),
			"",
			v.sty.Dim.Render("Add a .toml file to the dashboards"),
			v.sty.Dim.Render("directory (flo config path)."))
	default:
		for i, item := range v.items {
			lines = append(lines, v.renderItem(item, i == v.cursor, innerWidth))
		}
	}

	k := v.sty.Key.Render
	help := v.sty.Dim.Render(fmt.Sprintf("%s:switch  %s:stop  %s:close", k("enter"), k("x"), k("esc")))

	content := lipgloss.JoinVertical(lipgloss.Left, strings.Join(lines, "\n"), "", help)
	modal := renderModal(v.theme, v.sty, " Dashboards ", content, innerWidth)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderItem renders one dashboard line: cursor, name, then the engine
// state right-aligned.
func (v SwitcherView) renderItem(item SwitcherItem, selected bool, width int) string {
	cursor := "  "
	if selected {
		cursor = "> "
	}
	nameStyle := v.sty.Value
	if selected {
		nameStyle = nameStyle.Foreground(v.theme.Base06).Bold(true)
	}

	var status string
	switch {
	case !item.Running:
		status = v.sty.Dim.Render("o stopped")
	case item.Info.State == engine.EngineError:
		status = v.sty.StatusDown.Render("* error") +
			v.sty.Dim.Render(fmt.Sprintf("  (%d/%d)", item.Info.ErrorCount, item.Info.PollCount))
	default:
		status = v.sty.StatusUp.Render("* LIVE") +
			v.sty.Dim.Render(fmt.Sprintf("  (%d)", item.Info.PollCount))
	}

	name := truncate(item.Name, max(width-len(cursor)-lipgloss.Width(status)-2, 4))
	pad := max(width-len(cursor)-len(name)-lipgloss.Width(status), 2)

	return v.sty.Key.Render(cursor) + nameStyle.Render(name) + strings.Repeat(" ", pad) + status
}

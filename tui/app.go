package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/flo/internal/config"
	"github.com/tonhe/flo/internal/dashboard"
	"github.com/tonhe/flo/internal/engine"
	"github.com/tonhe/flo/tui/components"
	"github.com/tonhe/flo/tui/keys"
	"github.com/tonhe/flo/tui/styles"
	"github.com/tonhe/flo/tui/views"
)

// AppState represents the current screen/view of the application.
type AppState int

const (
	StateDashboard AppState = iota
	StateSwitcher
	StateDetail
)

// TickMsg triggers a periodic UI refresh to pick up new poll data.
type TickMsg struct{}

// AppModel is the root Bubble Tea model that manages all views and state.
type AppModel struct {
	ctx        context.Context
	state      AppState
	themeSlug  string
	theme      styles.Theme
	config     *config.Config
	manager    *engine.Manager
	dashDir    string
	version    string
	dashboard  views.DashboardView
	detail     views.DetailView
	switcher   views.SwitcherView
	help       views.HelpView
	width      int
	height     int
	activeDash string
	depth      int
	flash      string
}

// NewAppModel creates a new AppModel. Engines started from the switcher
// run under ctx.
func NewAppModel(ctx context.Context, cfg *config.Config, mgr *engine.Manager, dashDir, version string) AppModel {
	slug := cfg.Theme
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(slug); t != nil {
		theme = *t
	}
	return AppModel{
		ctx:       ctx,
		state:     StateDashboard,
		themeSlug: slug,
		theme:     theme,
		config:    cfg,
		manager:   mgr,
		dashDir:   dashDir,
		version:   version,
		dashboard: views.NewDashboardView(theme),
		detail:    views.NewDetailView(theme),
		switcher:  views.NewSwitcherView(theme),
		help:      views.NewHelpView(theme),
	}
}

// Open makes name the active dashboard, starting its engine if it is not
// already running.
func (m *AppModel) Open(name string) error {
	dash, err := dashboard.LoadDashboardWithDefaults(
		dashboard.Resolve(m.dashDir, name), m.config.PollInterval, m.config.MaxHistory)
	if err != nil {
		return err
	}
	if _, err := m.manager.GetSnapshot(dash.Name); err != nil {
		if err := m.manager.Start(m.ctx, dash); err != nil {
			return err
		}
	}
	m.activeDash = dash.Name
	m.depth = dash.MaxHistory
	m.refresh()
	return nil
}

// Init returns the initial command to start the tick loop.
func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// refresh pulls the active dashboard's snapshot into the views. The detail
// view follows its interface by host and name.
func (m *AppModel) refresh() {
	if m.activeDash == "" {
		m.dashboard.SetSnapshot(nil)
		return
	}
	snap, err := m.manager.GetSnapshot(m.activeDash)
	if err != nil {
		m.activeDash = ""
		m.dashboard.SetSnapshot(nil)
		if m.state == StateDetail {
			m.state = StateDashboard
		}
		return
	}
	m.dashboard.SetSnapshot(snap)

	host, name, ok := m.detail.Interface()
	if !ok {
		return
	}
	snap.Interfaces(func(t engine.TargetStats, iface engine.InterfaceStats) {
		if t.Host == host && iface.Name == name {
			m.detail.SetInterface(t, &iface)
		}
	})
}

func (m *AppModel) setTheme(slug string) {
	t := styles.GetThemeByName(slug)
	if t == nil {
		return
	}
	m.themeSlug = slug
	m.theme = *t
	m.dashboard.SetTheme(*t)
	m.detail.SetTheme(*t)
	m.switcher.SetTheme(*t)
	m.help.SetTheme(*t)
}

// clearHistory drops retained samples for the selected interface, or for
// every interface on its device when wholeHost is set.
func (m *AppModel) clearHistory(wholeHost bool) {
	var host, name string
	switch m.state {
	case StateDetail:
		var ok bool
		if host, name, ok = m.detail.Interface(); !ok {
			return
		}
	default:
		target, iface, ok := m.dashboard.Selected()
		if !ok {
			return
		}
		host, name = target.Host, iface.Name
	}
	if wholeHost {
		name = ""
	}
	if err := m.manager.ResetHistory(m.activeDash, host, name); err != nil {
		m.flash = err.Error()
		return
	}
	m.refresh()
}

func (m *AppModel) resize() {
	bodyHeight := max(m.height-3, 1) // 1 header line, 2 status bar lines
	m.dashboard.SetSize(m.width, bodyHeight)
	m.detail.SetSize(m.width, bodyHeight)
	m.switcher.SetSize(m.width, bodyHeight)
	m.help.SetSize(m.width, bodyHeight)
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case TickMsg:
		m.refresh()
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap
	m.flash = ""

	if key.Matches(msg, km.Quit) {
		m.manager.StopAll()
		return m, tea.Quit
	}
	if m.help.IsVisible() {
		if key.Matches(msg, km.Help) || key.Matches(msg, km.Escape) {
			m.help.Toggle()
		}
		return m, nil
	}
	switch {
	case key.Matches(msg, km.Help):
		m.help.Toggle()
		return m, nil
	case key.Matches(msg, km.Theme):
		m.setTheme(styles.NextTheme(m.themeSlug))
		return m, nil
	}

	switch m.state {
	case StateSwitcher:
		return m.updateSwitcher(msg)

	case StateDetail:
		switch {
		case key.Matches(msg, km.Clear):
			m.clearHistory(false)
		case key.Matches(msg, km.ClearHost):
			m.clearHistory(true)
		default:
			var back bool
			m.detail, _, back = m.detail.Update(msg)
			if back {
				m.state = StateDashboard
			}
		}
		return m, nil

	default:
		switch {
		case key.Matches(msg, km.Dashboard):
			m.switcher.Refresh(m.dashDir, m.manager)
			m.state = StateSwitcher
		case key.Matches(msg, km.Enter):
			if target, iface, ok := m.dashboard.Selected(); ok {
				m.detail.SetInterface(target, &iface)
				m.state = StateDetail
			}
		case key.Matches(msg, km.Clear):
			m.clearHistory(false)
		case key.Matches(msg, km.ClearHost):
			m.clearHistory(true)
		default:
			var cmd tea.Cmd
			m.dashboard, cmd = m.dashboard.Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m AppModel) updateSwitcher(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var action views.SwitcherAction
	m.switcher, _, action = m.switcher.Update(msg)

	switch action {
	case views.ActionClose:
		m.state = StateDashboard
	case views.ActionSwitch:
		if item := m.switcher.SelectedItem(); item != nil {
			if err := m.Open(item.Name); err != nil {
				m.flash = err.Error()
				return m, nil
			}
		}
		m.state = StateDashboard
	case views.ActionStop:
		if item := m.switcher.SelectedItem(); item != nil {
			if err := m.manager.Stop(item.Info.Name); err != nil {
				m.flash = err.Error()
			}
			m.switcher.Refresh(m.dashDir, m.manager)
			m.refresh()
		}
	}
	return m, nil
}

// activeState reports the active engine's lifecycle state.
func (m AppModel) activeState(engines []engine.EngineInfo) engine.EngineState {
	for _, info := range engines {
		if info.Name == m.activeDash {
			return info.State
		}
	}
	return engine.EngineStopped
}

// View renders the full application UI by composing header, body, and status.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	engines := m.manager.ListEngines()
	header := components.RenderHeader(m.theme, m.activeDash, m.activeState(engines),
		len(engines), m.width, m.version)

	var body string
	switch {
	case m.help.IsVisible():
		body = m.help.View()
	case m.state == StateSwitcher:
		body = m.switcher.View()
	case m.state == StateDetail:
		body = m.detail.View()
	default:
		body = m.dashboard.View()
	}

	bodyHeight := max(m.height-3, 1)
	if m.flash != "" {
		flash := lipgloss.NewStyle().Foreground(m.theme.Base08).Render(" " + m.flash)
		body = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().MaxHeight(bodyHeight-1).Render(body), flash)
	}

	var snap *engine.DashboardSnapshot
	if m.activeDash != "" {
		snap, _ = m.manager.GetSnapshot(m.activeDash)
	}
	statusBar := components.RenderStatusBar(m.theme, snap, m.depth, m.width)

	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}

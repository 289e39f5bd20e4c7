package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/flo/tui/styles"
)

type helpSection struct {
	title    string
	bindings [][2]string
}

var helpSections = []helpSection{
	{"Global", [][2]string{
		{"q / Ctrl+C", "Quit"},
		{"?", "Toggle this help"},
		{"t", "Next theme"},
	}},
	{"Dashboard", [][2]string{
		{"Up / Down", "Navigate interfaces"},
		{"Enter", "Detail view"},
		{"d", "Dashboard switcher"},
		{"c", "Clear interface history"},
		{"C", "Clear device history"},
	}},
	{"Dashboard Switcher", [][2]string{
		{"Enter", "Switch to dashboard"},
		{"x", "Stop engine"},
		{"Esc", "Close"},
	}},
	{"Detail View", [][2]string{
		{"c / C", "Clear interface / device history"},
		{"Esc", "Back to dashboard"},
	}},
}

// HelpView renders a modal overlay showing all keyboard shortcuts.
type HelpView struct {
	theme   styles.Theme
	sty     *styles.Styles
	width   int
	height  int
	visible bool
}

// NewHelpView creates a new HelpView with the given theme.
func NewHelpView(theme styles.Theme) HelpView {
	return HelpView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetTheme restyles the overlay.
func (v *HelpView) SetTheme(theme styles.Theme) {
	v.theme = theme
	v.sty = styles.NewStyles(theme)
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the help overlay as a centered modal box.
func (v HelpView) View() string {
	modalWidth := 48
	if v.width > 60 {
		modalWidth = min(v.width/2, 60)
	}
	modalWidth = max(modalWidth, 38)
	innerWidth := modalWidth - 6 // border + padding

	sectionStyle := lipgloss.NewStyle().Foreground(v.theme.Base0E).Bold(true)

	var lines []string
	for _, s := range helpSections {
		lines = append(lines, sectionStyle.Render(s.title))
		for _, b := range s.bindings {
			lines = append(lines, fmt.Sprintf("  %s  %s",
				v.sty.Key.Render(padRight(b[0], 12)),
				v.sty.Value.Render(b[1])))
		}
		lines = append(lines, "")
	}
	lines = append(lines, v.sty.Dim.Render("[?] close"))

	modal := renderModal(v.theme, v.sty, " Keyboard Shortcuts ", strings.Join(lines, "\n"), innerWidth)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderModal draws content in the modal border with title set into the
// top edge.
func renderModal(theme styles.Theme, sty *styles.Styles, title, content string, innerWidth int) string {
	body := sty.ModalBorder.BorderTop(false).Width(innerWidth).Render(content)

	edge := lipgloss.NewStyle().Foreground(theme.Base0D).Background(theme.Base00)
	right := max(lipgloss.Width(body)-3-lipgloss.Width(title), 0) // corners and one dash
	top := edge.Render("╭─") + sty.ModalTitle.Render(title) + edge.Render(strings.Repeat("─", right)+"╮")

	return top + "\n" + body
}

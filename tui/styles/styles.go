package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Table
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowSel lipgloss.Style

	// Status colors
	StatusUp    lipgloss.Style
	StatusDown  lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusStale lipgloss.Style

	// Utilization thresholds
	UtilLow  lipgloss.Style // < 50%
	UtilMid  lipgloss.Style // 50-80%
	UtilHigh lipgloss.Style // > 80%

	SparklineStyle lipgloss.Style
	GroupHeader    lipgloss.Style

	// Detail panel
	Label     lipgloss.Style
	Value     lipgloss.Style
	Highlight lipgloss.Style
	Dim       lipgloss.Style
	Key       lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		TableRowSel: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base02),

		StatusUp: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Base0A),
		StatusStale: lipgloss.NewStyle().
			Foreground(theme.Base09).
			Italic(true),

		UtilLow: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		UtilMid: lipgloss.NewStyle().
			Foreground(theme.Base0A),
		UtilHigh: lipgloss.NewStyle().
			Foreground(theme.Base08),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Base0C),
		GroupHeader: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Width(16),
		Value: lipgloss.NewStyle().
			Foreground(theme.Base05),
		Highlight: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		Dim: lipgloss.NewStyle().
			Foreground(theme.Base04),
		Key: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
	}
}

package ui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	colorAccent  = "#9D4EDD"
	colorAccent2 = "#7B2CBF"
	colorMuted   = "60"
	colorDim     = "240"
	colorText    = "252"
	colorError   = "#E84A27"
	colorOK      = "#4ADE80"
	colorSpace   = "#0B0B14"
)

var (
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOK))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorAccent2)).
			Padding(0, 1)
)

// fg renders s in a hex or ANSI colour.
func fg(color, s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(s)
}

// Package termview renders portfolio data for the terminal.
package termview

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorAccent = lipgloss.Color("#39D353")
	colorMuted  = lipgloss.Color("#666666")
	colorFg     = lipgloss.Color("#C0CAF5")
	colorSubtle = lipgloss.Color("#414868")

	levelColors = [...]lipgloss.Color{
		lipgloss.Color("#2D333B"),
		lipgloss.Color("#0E4429"),
		lipgloss.Color("#006D32"),
		lipgloss.Color("#26A641"),
		lipgloss.Color("#39D353"),
	}
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)
)

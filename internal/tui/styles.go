package tui

import "github.com/charmbracelet/lipgloss"

var (
	playingColor = lipgloss.Color("#10B981") // Green
	pausedColor  = lipgloss.Color("#F59E0B") // Amber
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	accentColor  = lipgloss.Color("#A78BFA") // Purple

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	primaryMarkStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor)

	playingStyle = lipgloss.NewStyle().Foreground(playingColor)
	pausedStyle  = lipgloss.NewStyle().Foreground(pausedColor)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)

	trackStyle = lipgloss.NewStyle().Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#FF6600")
	colorAccent  = lipgloss.Color("#FFA366")
	colorMuted   = lipgloss.Color("#8A8A8A")
	colorError   = lipgloss.Color("#E5484D")

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	questionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted)

	chipSelectedStyle = chipStyle.
				BorderForeground(colorPrimary).
				Foreground(colorPrimary)

	chipFocusedStyle = chipStyle.
				BorderForeground(colorAccent).
				Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorError)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1).
			MarginBottom(1)

	cardHiddenStyle = cardStyle.
			BorderForeground(colorMuted).
			Foreground(colorMuted)

	progressStyle = lipgloss.NewStyle().
			Foreground(colorAccent)
)

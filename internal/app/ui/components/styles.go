package components

import "github.com/charmbracelet/lipgloss"

// Shared styles for the shell chrome
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	HeaderStyle = lipgloss.NewStyle()

	FooterStyle = lipgloss.NewStyle()

	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	StatePassedStyle = lipgloss.NewStyle().
				Foreground(FgStatePassed).
				Bold(true)

	StateRunningStyle = lipgloss.NewStyle().
				Foreground(FgStateRunning).
				Bold(true)

	StateFailedStyle = lipgloss.NewStyle().
				Foreground(FgStateFailed).
				Bold(true)
)

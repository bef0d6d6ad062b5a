package cli

import (
	"github.com/charmbracelet/lipgloss"

	"tlog/internal/config"
)

// Typography for help and version output
var (
	headline = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginTop(1)
	title    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	body     = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	label    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")).Italic(true)
)

var (
	sectionHeader    = headline.MarginBottom(1)
	commandNameStyle = title
	exampleCode      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFA726"))
	errorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E53935"))

	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginTop(1)
)

// RenderTitle renders the app name, version and description
func RenderTitle() string {
	heading := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)

	return lipgloss.JoinVertical(lipgloss.Left, heading, body.Render(config.AppDescription))
}

package logview

import "github.com/charmbracelet/lipgloss"

const (
	colorMuted = lipgloss.Color("7")

	importantMarker = "┃ "
	normalMarker    = "  "
)

var (
	emptyStateStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	markerStyle = lipgloss.NewStyle()
)

// Style returns the lipgloss style for the line; emphasis maps to bold plus a heavy gutter marker
func (l Line) Style() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(l.Color.terminalColor()).
		Bold(l.Bold())
}

// Marker returns the styled gutter prefix for the line
func (l Line) Marker() string {
	if !l.Important {
		return normalMarker
	}

	return markerStyle.Foreground(l.Color.terminalColor()).Render(importantMarker)
}

// Gutter returns the unstyled gutter prefix for the line
func (l Line) Gutter() string {
	if !l.Important {
		return normalMarker
	}

	return importantMarker
}

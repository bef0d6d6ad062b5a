package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tlog/internal/config"
)

// RenderLine renders a separator of the given width
func RenderLine(width int) string {
	if width < 0 {
		width = 0
	}

	return SeparatorStyle.Render(strings.Repeat("─", width))
}

// RenderHeader renders ─── <title> ─────── <info> ───, truncating the title first
func RenderHeader(width int, title, info string) string {
	titleWidth := lipgloss.Width(title)
	infoWidth := lipgloss.Width(info)

	maxTitleWidth := width - infoWidth - HeaderSeparatorMinWidth - HeaderFixedChars
	if titleWidth > maxTitleWidth && maxTitleWidth > 0 {
		title = Truncate(title, maxTitleWidth)
		titleWidth = lipgloss.Width(title)
	}

	separatorWidth := max(width-titleWidth-infoWidth-HeaderFixedChars, HeaderSeparatorMinWidth)

	return HeaderStyle.Render(RenderLine(3) + " " + title + " " + RenderLine(separatorWidth) + " " + info + " " + RenderLine(3))
}

// RenderFooter renders the version line followed by the help text
func RenderFooter(width int, helpText string) string {
	version := fmt.Sprintf("v%s", config.Version)

	separatorWidth := max(width-lipgloss.Width(version)-FooterFixedChars, FooterSeparatorMinWidth)
	versionLine := RenderLine(separatorWidth) + " " + version + " " + RenderLine(3)

	return FooterStyle.Render(lipgloss.JoinVertical(lipgloss.Left, versionLine, HelpStyle.Render(helpText)))
}

// Truncate shortens s to maxWidth cells, ending with an ellipsis
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	if maxWidth == 1 {
		return "…"
	}

	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		truncated := string(runes[:i]) + "…"
		if lipgloss.Width(truncated) <= maxWidth {
			return truncated
		}
	}

	return "…"
}

package logview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const emptyStateText = "Waiting for log lines…"

// View returns the visible part of the log
func (m Model) View() string {
	if len(m.lines) == 0 {
		return strings.Repeat(" ", m.padding) + emptyStateStyle.Render(emptyStateText)
	}

	return m.viewport.View()
}

// refresh pushes the rendered rows into the viewport, keeping the scroll offset where possible
func (m *Model) refresh() {
	offset := m.viewport.YOffset

	m.viewport.SetContent(strings.Join(m.rendered, "\n"))
	m.viewport.SetYOffset(offset)
}

func (m *Model) rerender() {
	m.renderWidth = m.contentWidth()

	for i, line := range m.lines {
		m.rendered[i] = m.renderLine(line, m.renderWidth)
	}
}

// renderLine wraps a line to width and styles each row with the line's color and emphasis
func (m *Model) renderLine(line Line, width int) string {
	m.renderWidth = width

	pad := strings.Repeat(" ", m.padding)
	gutter := line.Marker()

	textWidth := width - 2*m.padding - lipgloss.Width(gutter)
	if textWidth < 1 {
		textWidth = 1
	}

	style := line.Style()
	rows := wrapText(line.Text, textWidth)

	var b strings.Builder

	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(pad)
		b.WriteString(gutter)
		b.WriteString(style.Render(row))
	}

	return b.String()
}

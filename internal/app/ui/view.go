package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tlog/internal/app/monitor"
	"tlog/internal/app/plan"
	"tlog/internal/app/ui/components"
)

const (
	headerHeight  = 1
	minViewHeight = 1

	stateStreaming = "streaming"
	stateStopped   = "stopped"

	infoSeparator = " • "
)

// View renders the header, the log and the footer
func (m Model) View() string {
	if !m.state.ready {
		return "Initializing…"
	}

	header := components.RenderHeader(m.ui.width, components.TitleStyle.Render(m.renderTitle()), m.renderInfo())
	body := lipgloss.NewStyle().Height(m.viewHeight()).Render(m.view.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) viewHeight() int {
	return max(m.ui.height-headerHeight-lipgloss.Height(m.renderFooter()), minViewHeight)
}

func (m Model) renderTitle() string {
	if m.state.source == "" {
		return m.state.title
	}

	return m.state.title + " · " + m.state.source
}

// renderInfo renders state, step progress, stats and the follow indicator
func (m Model) renderInfo() string {
	parts := make([]string, 0, 6)

	if s := m.renderState(); s != "" {
		parts = append(parts, s)
	}

	if m.state.step != "" {
		parts = append(parts, fmt.Sprintf("%d/%d %s", m.state.stepIndex, m.state.stepTotal, m.state.step))
	}

	if m.state.passed > 0 || m.state.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d passed %d failed", m.state.passed, m.state.failed))
	}

	if m.state.clients > 0 {
		parts = append(parts, fmt.Sprintf("%d clients", m.state.clients))
	}

	if m.state.cpu > 0 || m.state.mem > 0 {
		parts = append(parts, fmt.Sprintf("cpu %s mem %s", monitor.FormatCPU(m.state.cpu), monitor.FormatMEM(m.state.mem)))
	}

	follow := "paused"
	if m.view.Follow() {
		follow = "follow"
	}

	parts = append(parts, fmt.Sprintf("%d lines %s", m.view.Len(), follow))

	return components.MutedStyle.Render(strings.Join(parts, infoSeparator)) + " " + m.ui.pulse.Render(components.StateRunningStyle)
}

func (m Model) renderState() string {
	switch m.state.runState {
	case "":
		return ""
	case plan.Passed:
		return components.StatePassedStyle.Render(m.state.runState)
	case plan.Failed, plan.Aborted, stateStopped:
		return components.StateFailedStyle.Render(m.state.runState)
	default:
		return components.StateRunningStyle.Render(m.state.runState)
	}
}

// renderFooter renders the version line, key help and either the last error or a tip
func (m Model) renderFooter() string {
	helpText := m.ui.help.View(m.ui.keys)

	if !m.ui.showHelp {
		hint := m.ui.tip
		if m.state.lastError != "" {
			hint = components.StateFailedStyle.Render(m.state.lastError)
		}

		helpText = lipgloss.NewStyle().MaxWidth(max(m.ui.width-2, 1)).Render(helpText + infoSeparator + hint)
	}

	return components.RenderFooter(m.ui.width, helpText)
}

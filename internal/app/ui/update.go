package ui

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tlog/internal/app/bus"
	"tlog/internal/app/monitor"
	"tlog/internal/app/ui/components"
)

// busMsg wraps a bus message for tea messaging
type busMsg bus.Message

// tickMsg drives animations
type tickMsg time.Time

// statsMsg carries one resource sample
type statsMsg struct {
	PID   int
	Stats monitor.Stats
	Err   error
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width
		m.state.ready = true
		m.layout()

		return m, nil

	case tea.MouseMsg:
		_, cmd := m.view.Update(msg)
		return m, cmd

	case tickMsg:
		m.ui.pulse.Update()
		return m, tickCmd()

	case statsMsg:
		m.applyStats(msg)
		return m, statsCmd(m.ctx, m.monitor, m.interval, m.state.pid)

	case busMsg:
		m.handleMessage(bus.Message(msg))
		return m, nil
	}

	// Append, clear and scroll messages from the log view handle
	before := m.view.Len()
	_, cmd := m.view.Update(msg)

	if m.view.Len() > before {
		m.ui.pulse.Beat()
	}

	return m, cmd
}

// handleKeyPress processes shell keys and forwards the rest to the log view
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.ForceQuit):
		m.log.Warn().Msg("Force quit requested")
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.Help):
		m.ui.showHelp = !m.ui.showHelp
		m.ui.help.ShowAll = m.ui.showHelp
		m.layout()

		return m, nil
	}

	return m, m.view.HandleKey(msg)
}

// handleMessage folds a bus event into the status header
func (m *Model) handleMessage(msg bus.Message) {
	switch data := msg.Data.(type) {
	case bus.PlanStarted:
		m.state.source = "plan " + data.Name
		m.state.stepTotal = len(data.Steps)
		m.state.stepIndex = 0
		m.state.passed = 0
		m.state.failed = 0
		m.state.lastError = ""

	case bus.StepStarted:
		m.state.step = data.Name
		m.state.stepIndex = data.Index
		m.state.stepTotal = data.Total
		m.state.pid = data.PID

	case bus.StepPassed:
		m.state.passed++
		m.stepDone()

	case bus.StepFailed:
		m.state.failed++
		m.stepDone()

		if data.Error != nil {
			m.state.lastError = data.Error.Error()
		}

	case bus.RunStateChanged:
		m.state.runState = data.To

	case bus.PlanFinished:
		m.state.runState = data.State
		m.state.step = ""

	case bus.SourceStarted:
		m.state.source = data.Kind + " " + data.Target
		m.state.runState = stateStreaming

	case bus.SourceFailed:
		m.state.runState = stateStopped

		if data.Error != nil {
			m.state.lastError = data.Error.Error()
		}

	case bus.SourceReset:
		m.log.Debug().Msgf("Source %s restarted from the beginning", data.Target)

	case bus.Client:
		switch msg.Type {
		case bus.EventClientConnected:
			m.state.clients++
		case bus.EventClientDisconnected:
			m.state.clients = max(m.state.clients-1, 0)
		}
	}
}

func (m *Model) stepDone() {
	m.state.pid = 0
	m.state.cpu = 0
	m.state.mem = 0
}

// applyStats keeps a sample only if it belongs to the process currently shown
func (m *Model) applyStats(msg statsMsg) {
	if msg.PID != statsTarget(m.state.pid) {
		return
	}

	if msg.Err != nil {
		m.log.Debug().Err(msg.Err).Msgf("Failed to sample PID %d", msg.PID)
		return
	}

	m.state.cpu = msg.Stats.CPU
	m.state.mem = msg.Stats.MEM
}

// layout sizes the log view to the space between header and footer
func (m *Model) layout() {
	if !m.state.ready {
		return
	}

	height := m.ui.height - headerHeight - lipgloss.Height(m.renderFooter())
	m.view.SetSize(m.ui.width, max(height, minViewHeight))
}

func tickCmd() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// statsCmd samples the running step, or tlog itself when no step is running
func statsCmd(ctx context.Context, mon monitor.Monitor, interval time.Duration, pid int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		target := statsTarget(pid)
		stats, err := mon.GetStats(ctx, target)

		return statsMsg{PID: target, Stats: stats, Err: err}
	})
}

func statsTarget(pid int) int {
	if pid > 0 {
		return pid
	}

	return os.Getpid()
}

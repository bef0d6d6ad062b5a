package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"tlog/internal/app/logview"
	"tlog/internal/app/monitor"
	"tlog/internal/app/ui/components"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// Model is the root Bubble Tea model: a status header, the log view and a help footer
type Model struct {
	ctx      context.Context
	monitor  monitor.Monitor
	interval time.Duration
	view     *logview.Model

	state struct {
		title     string
		source    string
		runState  string
		step      string
		stepIndex int
		stepTotal int
		pid       int
		cpu       float64
		mem       float64
		clients   int
		passed    int
		failed    int
		lastError string
		ready     bool
	}

	ui struct {
		width    int
		height   int
		keys     KeyMap
		help     help.Model
		showHelp bool
		pulse    *components.Pulse
		tip      string
	}

	log logger.Logger
}

// NewModel creates the root model; bus events reach it through a Subscriber
func NewModel(
	ctx context.Context,
	title string,
	view *logview.Model,
	mon monitor.Monitor,
	cfg *config.Config,
	log logger.Logger,
) Model {
	log = log.WithComponent("UI")

	interval := cfg.Monitor.Interval
	if interval <= 0 {
		interval = config.DefaultMonitorInterval
	}

	m := Model{
		ctx:      ctx,
		monitor:  mon,
		interval: interval,
		view:     view,
		log:      log,
	}

	m.state.title = title

	m.ui.keys = DefaultKeyMap(view.Keys())
	m.ui.help = help.New()
	m.ui.pulse = components.NewPulse()
	m.ui.tip = components.RandomTip()

	return m
}

// Init starts the animation tick and the stats sampler
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		statsCmd(m.ctx, m.monitor, m.interval, m.state.pid),
	)
}

package wire

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/fx"

	"tlog/internal/app/bus"
	"tlog/internal/app/logview"
	"tlog/internal/app/monitor"
	"tlog/internal/app/ui"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// UI creates a Bubble Tea program titled title and the sink that feeds its log view
type UI func(ctx context.Context, title string) (*tea.Program, logview.Sink, error)

// Module aggregates all UI modules and provides the UI factory
var Module = fx.Options(
	monitor.Module,
	fx.Provide(NewUI),
)

// UIParams contains dependencies for creating the UI factory
type UIParams struct {
	fx.In

	Config  *config.Config
	Bus     bus.Bus
	Monitor monitor.Monitor
	Logger  logger.Logger
}

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(params UIParams) UI {
	return func(ctx context.Context, title string) (*tea.Program, logview.Sink, error) {
		dispatcher := logview.NewDispatcher()

		view := logview.NewModel(logview.Options{
			MaxLines: params.Config.View.MaxLines,
			Follow:   params.Config.View.Follow,
			Padding:  params.Config.View.Padding,
		})

		model := ui.NewModel(ctx, title, &view, params.Monitor, params.Config, params.Logger)

		p := tea.NewProgram(
			model,
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
			tea.WithContext(ctx),
		)

		dispatcher.Attach(p.Send)
		ui.NewSubscriber(params.Bus, dispatcher).Start(ctx)

		params.Logger.Debug().Msg("TUI: Program created via factory")

		return p, logview.New(dispatcher), nil
	}
}

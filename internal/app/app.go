package app

import (
	"context"

	"go.uber.org/fx"

	"tlog/internal/app/cli"
	"tlog/internal/config/logger"
)

// App represents the main application container
type App struct {
	cli        cli.CLI
	shutdowner fx.Shutdowner
	cancel     context.CancelFunc
	done       chan struct{}
	log        logger.Logger
}

// NewApp creates a new application instance with its dependencies
func NewApp(cli cli.CLI, shutdowner fx.Shutdowner, log logger.Logger) *App {
	return &App{
		cli:        cli,
		shutdowner: shutdowner,
		cancel:     func() {},
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run executes the CLI and asks fx to stop with its exit code
func (a *App) Run(ctx context.Context) {
	exitCode := a.execute(ctx)
	close(a.done)

	if err := a.shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
		a.log.Debug().Err(err).Msg("Shutdown already in progress")
	}
}

// execute runs the CLI and returns its exit code
func (a *App) execute(ctx context.Context) int {
	exitCode, err := a.cli.Execute(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("Application error")
	}

	return exitCode
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App) {
	lifecycle.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			app.cancel = cancel

			go app.Run(ctx)

			return nil
		},
		OnStop: func(ctx context.Context) error {
			app.cancel()

			select {
			case <-app.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"tlog/internal/app"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// commands that never start the TUI
var plainCommands = map[string]bool{
	"send":      true,
	"init":      true,
	"version":   true,
	"help":      true,
	"-v":        true,
	"--version": true,
	"-h":        true,
	"--help":    true,
}

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	application := createApp(cfg, usesTUI(os.Args[1:]))
	application.Run()
}

// usesTUI reports whether args start the TUI, whose screen diagnostic output would corrupt
func usesTUI(args []string) bool {
	for _, arg := range args {
		if arg == "--no-ui" || plainCommands[arg] {
			return false
		}
	}

	return true
}

// loadConfig wraps config.Load for easier testing
func loadConfig() (*config.Config, error) {
	return config.Load()
}

// createApp creates the FX application with the given config
func createApp(cfg *config.Config, tui bool) *fx.App {
	return fx.New(appOptions(cfg, tui)...)
}

// appOptions returns the FX options for the application graph
func appOptions(cfg *config.Config, tui bool) []fx.Option {
	var logOutput io.Writer
	if tui {
		logOutput = io.Discard
	}

	return []fx.Option{
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg),
		fx.Provide(func() logger.Logger {
			return logger.NewLoggerWithOutput(cfg, logOutput)
		}),
		app.Module,
	}
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}

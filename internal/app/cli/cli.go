//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"go.uber.org/fx"

	"tlog/internal/app/bus"
	"tlog/internal/app/errors"
	"tlog/internal/app/generator"
	"tlog/internal/app/logview"
	"tlog/internal/app/plan"
	"tlog/internal/app/printer"
	"tlog/internal/app/report"
	"tlog/internal/app/rules"
	"tlog/internal/app/source"
	"tlog/internal/app/ui/wire"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute(ctx context.Context) (exitCode int, err error)
}

// Params contains the dependencies of the CLI
type Params struct {
	fx.In

	Config     *config.Config
	Bus        bus.Bus
	Classifier rules.Classifier
	Runner     plan.Runner
	UI         wire.UI
	Generator  generator.Generator
	Reporter   report.Reporter
	Logger     logger.Logger
}

// cli represents the command-line interface for the application
type cli struct {
	args       []string
	cfg        *config.Config
	bus        bus.Bus
	classifier rules.Classifier
	runner     plan.Runner
	ui         wire.UI
	generator  generator.Generator
	reporter   report.Reporter
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool
	log        logger.Logger
}

// NewCLI creates a CLI over the process arguments and standard streams
func NewCLI(p Params) CLI {
	return &cli{
		args:       os.Args[1:],
		cfg:        p.Config,
		bus:        p.Bus,
		classifier: p.Classifier,
		runner:     p.Runner,
		ui:         p.UI,
		generator:  p.Generator,
		reporter:   p.Reporter,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		isTerminal: stdinIsTerminal,
		log:        p.Logger.WithComponent("CLI"),
	}
}

// Execute parses the arguments and runs the selected command
func (c *cli) Execute(ctx context.Context) (int, error) {
	opts, err := Parse(c.args)
	if err != nil {
		c.printError(err)
		return 1, err
	}

	if err := c.dispatch(ctx, opts); err != nil {
		if !errors.Is(err, errors.ErrPlanFailed) {
			c.reporter.CaptureError(err, map[string]string{"command": commandName(opts.Type)})
		}

		c.printError(err)

		return 1, err
	}

	return 0, nil
}

func (c *cli) dispatch(ctx context.Context, opts *Options) error {
	c.log.Debug().Msgf("Executing %s", commandName(opts.Type))

	switch opts.Type {
	case CommandHelp:
		fmt.Fprint(c.stdout, renderHelp())
		return nil
	case CommandVersion:
		fmt.Fprintln(c.stdout, RenderTitle())
		return nil
	case CommandInit:
		return c.generator.Generate(generator.Options{Dir: ".", Plan: opts.Plan}, opts.Force, opts.DryRun)
	case CommandSend:
		return c.handleSend(ctx, opts)
	case CommandRun:
		return c.handleRun(ctx, opts)
	case CommandTail:
		tail := source.NewTail(opts.Target, c.cfg, c.classifier, c.bus, c.log)
		return c.display(ctx, opts, tail.Run)
	case CommandListen:
		return c.handleListen(ctx, opts)
	case CommandDefault:
		if c.isTerminal() {
			fmt.Fprint(c.stdout, renderHelp())
			return nil
		}
	}

	reader := source.NewReader(source.KindStdin, "stdin", c.stdin, c.classifier, c.bus, c.log)

	return c.display(ctx, opts, reader.Run)
}

// handleRun loads the plan and runs it; any failed step fails the command
func (c *cli) handleRun(ctx context.Context, opts *Options) error {
	path := opts.Target
	if path == "" {
		path = c.cfg.Plan.File
	}

	p, err := plan.Load(path)
	if err != nil {
		return err
	}

	var result *plan.Result

	err = c.display(ctx, opts, func(ctx context.Context, sink logview.Sink) error {
		var err error

		result, err = c.runner.Run(ctx, p, sink)

		return err
	})
	if err != nil {
		return err
	}

	if result != nil && result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d steps failed", errors.ErrPlanFailed, result.Failed, len(result.Steps))
	}

	return nil
}

// handleListen binds the websocket endpoint before the display starts so bind errors surface immediately
func (c *cli) handleListen(ctx context.Context, opts *Options) error {
	cfg := *c.cfg
	if opts.Target != "" {
		cfg.Remote.Address = opts.Target
	}

	remote := source.NewRemote(&cfg, c.classifier, c.bus, c.log)
	if err := remote.Listen(); err != nil {
		return err
	}

	return c.display(ctx, opts, func(ctx context.Context, sink logview.Sink) error {
		sink.AppendStyledLine("Listening on "+remote.URL(), logview.Blue, false)
		sink.AppendStyledLine("Metrics at "+remote.MetricsURL(), logview.Gray, false)
		return remote.Run(ctx, sink)
	})
}

// handleSend pushes one payload to a listening tlog
func (c *cli) handleSend(ctx context.Context, opts *Options) error {
	payload := source.Line(opts.Text, opts.Color, opts.Important)
	if opts.Clear {
		payload = source.ClearAll()
	} else if opts.Color != "" {
		if _, err := logview.ParseColor(opts.Color); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, config.SendTimeout)
	defer cancel()

	return source.Send(ctx, opts.Target, payload)
}

// display runs work against the TUI, or against stdout with --no-ui.
// Quitting the TUI cancels work; that cancellation is not an error.
func (c *cli) display(ctx context.Context, opts *Options, work func(context.Context, logview.Sink) error) error {
	if opts.NoUI {
		return work(ctx, printer.New(c.cfg, c.stdout))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program, sink, err := c.ui(ctx, config.AppName)
	if err != nil {
		return err
	}

	done := make(chan error, 1)

	go func() {
		done <- work(ctx, sink)
	}()

	_, runErr := program.Run()

	cancel()

	workErr := <-done

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", runErr)
	}

	if errors.Is(workErr, context.Canceled) {
		return nil
	}

	return workErr
}

func (c *cli) printError(err error) {
	fmt.Fprintf(c.stderr, "%s %v\n", errorStyle.Render("Error:"), err)
}

func commandName(t CommandType) string {
	switch t {
	case CommandPipe, CommandDefault:
		return "pipe"
	case CommandRun:
		return "run"
	case CommandTail:
		return "tail"
	case CommandListen:
		return "listen"
	case CommandSend:
		return "send"
	case CommandInit:
		return "init"
	case CommandVersion:
		return "version"
	default:
		return "help"
	}
}

func stdinIsTerminal() bool {
	return term.IsTerminal(os.Stdin.Fd())
}

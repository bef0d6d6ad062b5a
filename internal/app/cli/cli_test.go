package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tlog/internal/app/bus"
	"tlog/internal/app/errors"
	"tlog/internal/app/generator"
	"tlog/internal/app/logview"
	"tlog/internal/app/plan"
	"tlog/internal/app/report"
	"tlog/internal/app/rules"
	"tlog/internal/app/source"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

type testCLI struct {
	*cli
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	runner   *plan.MockRunner
	gen      *generator.MockGenerator
	reporter *report.MockReporter
}

func newTestCLI(t *testing.T, ctrl *gomock.Controller, args ...string) *testCLI {
	t.Helper()

	cfg := config.DefaultConfig()

	classifier, err := rules.NewFromConfig(cfg)
	require.NoError(t, err)

	tc := &testCLI{
		stdout:   &bytes.Buffer{},
		stderr:   &bytes.Buffer{},
		runner:   plan.NewMockRunner(ctrl),
		gen:      generator.NewMockGenerator(ctrl),
		reporter: report.NewMockReporter(ctrl),
	}

	tc.cli = &cli{
		args:       args,
		cfg:        cfg,
		bus:        bus.NoOp(),
		classifier: classifier,
		runner:     tc.runner,
		generator:  tc.gen,
		reporter:   tc.reporter,
		stdin:      strings.NewReader(""),
		stdout:     tc.stdout,
		stderr:     tc.stderr,
		isTerminal: func() bool { return true },
		log:        logger.NewLoggerWithOutput(cfg, io.Discard),
	}

	return tc
}

func writePlan(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "plan.toml")
	content := "name = \"smoke\"\n\n[[steps]]\nname = \"hello\"\ncommand = \"true\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func Test_Execute_HelpAndVersion(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		terminal bool
		expected string
	}{
		{name: "help flag", args: []string{"--help"}, expected: "Usage:"},
		{name: "no args on a terminal", args: []string{}, terminal: true, expected: "Examples:"},
		{name: "version", args: []string{"version"}, expected: "v" + config.Version},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tc := newTestCLI(t, ctrl, tt.args...)
			tc.isTerminal = func() bool { return tt.terminal }

			code, err := tc.Execute(context.Background())

			assert.NoError(t, err)
			assert.Equal(t, 0, code)
			assert.Contains(t, tc.stdout.String(), tt.expected)
		})
	}
}

func Test_Execute_ParseError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "bogus")

	code, err := tc.Execute(context.Background())

	assert.Error(t, err)
	assert.Equal(t, 1, code)
	assert.Contains(t, tc.stderr.String(), "Error:")
}

func Test_Execute_Init(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "init", "--plan", "--force")
	tc.gen.EXPECT().Generate(generator.Options{Dir: ".", Plan: true}, true, false).Return(nil)

	code, err := tc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, code)
}

func Test_Execute_InitRefuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "init")
	tc.gen.EXPECT().Generate(gomock.Any(), false, false).Return(errors.ErrFileAlreadyExists)
	tc.reporter.EXPECT().CaptureError(errors.ErrFileAlreadyExists, map[string]string{"command": "init"})

	code, err := tc.Execute(context.Background())

	assert.ErrorIs(t, err, errors.ErrFileAlreadyExists)
	assert.Equal(t, 1, code)
}

func Test_Execute_Run(t *testing.T) {
	tests := []struct {
		name     string
		result   *plan.Result
		runErr   error
		wantErr  error
		wantCode int
	}{
		{name: "all passed", result: &plan.Result{Passed: 1, Steps: make([]plan.StepResult, 1)}},
		{name: "step failed", result: &plan.Result{Failed: 1, Steps: make([]plan.StepResult, 2)}, wantErr: errors.ErrPlanFailed, wantCode: 1},
		{name: "already running", runErr: errors.ErrPlanAlreadyRunning, wantErr: errors.ErrPlanAlreadyRunning, wantCode: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			path := writePlan(t)
			tc := newTestCLI(t, ctrl, "--no-ui", "run", path)

			tc.runner.EXPECT().
				Run(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, p *plan.Plan, sink logview.Sink) (*plan.Result, error) {
					assert.Equal(t, []string{"hello"}, p.StepNames())
					sink.AppendLine("Running plan " + p.Name)

					return tt.result, tt.runErr
				})

			if tt.runErr != nil {
				tc.reporter.EXPECT().CaptureError(gomock.Any(), map[string]string{"command": "run"})
			}

			code, err := tc.Execute(context.Background())

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, tc.stdout.String(), "Running plan smoke")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_Execute_RunMissingPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "--no-ui", "run", filepath.Join(t.TempDir(), "missing.toml"))
	tc.reporter.EXPECT().CaptureError(gomock.Any(), map[string]string{"command": "run"})

	code, err := tc.Execute(context.Background())

	assert.ErrorIs(t, err, errors.ErrFailedToReadPlan)
	assert.Equal(t, 1, code)
}

func Test_Execute_PipeWithoutUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "--no-ui")
	tc.isTerminal = func() bool { return false }
	tc.stdin = strings.NewReader("PASS: lights\nplain line\n")

	code, err := tc.Execute(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, tc.stdout.String(), "PASS: lights")
	assert.Contains(t, tc.stdout.String(), "plain line")
}

func Test_Execute_UIFactoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uiErr := errors.New("no terminal")

	tc := newTestCLI(t, ctrl, "pipe")
	tc.ui = func(context.Context, string) (*tea.Program, logview.Sink, error) {
		return nil, nil, uiErr
	}
	tc.reporter.EXPECT().CaptureError(uiErr, map[string]string{"command": "pipe"})

	code, err := tc.Execute(context.Background())

	assert.ErrorIs(t, err, uiErr)
	assert.Equal(t, 1, code)
}

func Test_Execute_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := config.DefaultConfig()
	cfg.Remote.Address = "127.0.0.1:0"

	classifier, err := rules.NewFromConfig(cfg)
	require.NoError(t, err)

	remote := source.NewRemote(cfg, classifier, bus.NoOp(), logger.NewLoggerWithOutput(cfg, io.Discard))
	require.NoError(t, remote.Listen())

	received := make(chan struct{})
	sink := logview.NewMockSink(ctrl)
	sink.EXPECT().AppendStyledLine("door open", logview.Green, true).Do(func(string, logview.Color, bool) { close(received) })

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)
		_ = remote.Run(ctx, sink)
	}()

	defer func() {
		cancel()
		<-stopped
	}()

	tc := newTestCLI(t, ctrl, "send", remote.URL(), "door open", "--color", "green", "--important")

	code, err := tc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("line was not delivered")
	}
}

func Test_Execute_SendInvalidColor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "send", "ws://127.0.0.1:1/lines", "x", "--color", "mauve")
	tc.reporter.EXPECT().CaptureError(gomock.Any(), map[string]string{"command": "send"})

	code, err := tc.Execute(context.Background())

	assert.ErrorIs(t, err, errors.ErrInvalidColor)
	assert.Equal(t, 1, code)
}

func Test_Execute_ListenBindError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "--no-ui", "listen", "not-an-address")
	tc.reporter.EXPECT().CaptureError(gomock.Any(), map[string]string{"command": "listen"})

	code, err := tc.Execute(context.Background())

	assert.ErrorIs(t, err, errors.ErrFailedToListen)
	assert.Equal(t, 1, code)
}

func Test_Execute_ListenWithoutUI(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := newTestCLI(t, ctrl, "--no-ui", "listen", "127.0.0.1:0")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	code, err := tc.Execute(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, tc.stdout.String(), "Listening on ws://127.0.0.1:")
	assert.Contains(t, tc.stdout.String(), "/metrics")
}

func Test_CommandName(t *testing.T) {
	assert.Equal(t, "pipe", commandName(CommandDefault))
	assert.Equal(t, "run", commandName(CommandRun))
	assert.Equal(t, "help", commandName(CommandHelp))
}

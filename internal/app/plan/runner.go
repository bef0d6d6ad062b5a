//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=plan
package plan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"tlog/internal/app/bus"
	"tlog/internal/app/errors"
	"tlog/internal/app/logview"
	"tlog/internal/app/rules"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// Scanner buffer sizes for step output
const (
	scannerBufferSize    = 64 * 1024
	scannerMaxBufferSize = 4 * 1024 * 1024
)

// Step outcomes
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// StepResult is the outcome of a single step
type StepResult struct {
	Name     string
	Status   string
	Duration time.Duration
	Err      error
}

// Result is the outcome of a plan run
type Result struct {
	Plan     string
	State    string
	Steps    []StepResult
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// Runner executes test plans and streams their output into a sink
type Runner interface {
	Run(ctx context.Context, p *Plan, sink logview.Sink) (*Result, error)
}

// runner implements the Runner interface
type runner struct {
	bus           bus.Bus
	classifier    rules.Classifier
	stopOnFailure bool
	running       atomic.Bool
	log           logger.Logger
}

// NewRunner creates a Runner; stopOnFailure applies to plans that do not set it themselves
func NewRunner(cfg *config.Config, classifier rules.Classifier, b bus.Bus, log logger.Logger) Runner {
	return &runner{
		bus:           b,
		classifier:    classifier,
		stopOnFailure: cfg.Plan.StopOnFailure,
		log:           log.WithComponent("RUNNER"),
	}
}

// Run executes every step in order. The returned error is non-nil only when the run could not start or was aborted
func (r *runner) Run(ctx context.Context, p *Plan, sink logview.Sink) (*Result, error) {
	if !r.running.CompareAndSwap(false, true) {
		return nil, errors.ErrPlanAlreadyRunning
	}
	defer r.running.Store(false)

	machine := newRunFSM(r.bus, r.log)
	if err := machine.Event(context.WithoutCancel(ctx), Start); err != nil {
		return nil, err
	}

	started := time.Now()
	result := &Result{Plan: p.Name, Steps: make([]StepResult, 0, len(p.Steps))}
	stopOnFailure := p.StopsOnFailure(r.stopOnFailure)

	r.log.Info().Msgf("Running plan '%s' with %d steps", p.Name, len(p.Steps))
	r.bus.Publish(bus.Message{
		Type:     bus.EventPlanStarted,
		Data:     bus.PlanStarted{Name: p.Name, Steps: p.StepNames()},
		Critical: true,
	})

	sink.Clear()
	sink.AppendStyledLine(fmt.Sprintf("Running plan %s", p.Name), logview.Blue, true)

	halted := false

	for i, step := range p.Steps {
		if halted || ctx.Err() != nil {
			sink.AppendStyledLine(fmt.Sprintf("SKIPPED: %s", step.Name), logview.Gray, false)
			result.Steps = append(result.Steps, StepResult{Name: step.Name, Status: StatusSkipped})
			result.Skipped++

			continue
		}

		res := r.runStep(ctx, step, i, len(p.Steps), sink)
		result.Steps = append(result.Steps, res)

		if res.Status == StatusPassed {
			result.Passed++
			continue
		}

		result.Failed++

		if stopOnFailure {
			halted = true
		}
	}

	result.Duration = time.Since(started)

	event := Pass
	switch {
	case ctx.Err() != nil:
		event = Abort
	case result.Failed > 0:
		event = Fail
	}

	// The run context may already be cancelled but the transition must still happen
	if err := machine.Event(context.WithoutCancel(ctx), event); err != nil {
		r.log.Error().Err(err).Msgf("Failed to record '%s' for plan '%s'", event, p.Name)
	}

	result.State = machine.Current()

	r.summarize(sink, result)

	r.bus.Publish(bus.Message{
		Type: bus.EventPlanFinished,
		Data: bus.PlanFinished{
			Name:     p.Name,
			State:    result.State,
			Passed:   result.Passed,
			Failed:   result.Failed,
			Skipped:  result.Skipped,
			Duration: result.Duration,
		},
		Critical: true,
	})

	if result.State == Aborted {
		return result, fmt.Errorf("%w: %w", errors.ErrPlanAborted, context.Cause(ctx))
	}

	return result, nil
}

// runStep runs one step to completion and reports its outcome to the sink and the bus
func (r *runner) runStep(ctx context.Context, step Step, index, total int, sink logview.Sink) StepResult {
	sink.AppendLine(fmt.Sprintf("Starting test %s", step.Name))

	stepCtx, cancel := context.WithTimeout(ctx, step.TimeoutOf())
	defer cancel()

	started := time.Now()
	err := r.execute(stepCtx, step, index, total, sink)
	elapsed := time.Since(started).Round(time.Millisecond)

	if err == nil {
		r.log.Info().Msgf("Step '%s' passed in %s", step.Name, elapsed)
		sink.AppendStyledLine(fmt.Sprintf("PASSED: %s (%s)", step.Name, elapsed), logview.Green, false)
		r.bus.Publish(bus.Message{
			Type:     bus.EventStepPassed,
			Data:     bus.StepPassed{Name: step.Name, Duration: elapsed},
			Critical: true,
		})

		return StepResult{Name: step.Name, Status: StatusPassed, Duration: elapsed}
	}

	if ctx.Err() == nil && stepCtx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("%w after %s", errors.ErrStepTimedOut, step.TimeoutOf())
	}

	r.log.Warn().Err(err).Msgf("Step '%s' failed", step.Name)
	sink.AppendStyledLine(fmt.Sprintf("FAILED: %s: %v", step.Name, err), logview.Red, true)
	r.bus.Publish(bus.Message{
		Type:     bus.EventStepFailed,
		Data:     bus.StepFailed{Name: step.Name, Error: err},
		Critical: true,
	})

	return StepResult{Name: step.Name, Status: StatusFailed, Duration: elapsed, Err: err}
}

// execute starts the step's command and streams both outputs until it exits
func (r *runner) execute(ctx context.Context, step Step, index, total int, sink logview.Sink) error {
	cmd := exec.CommandContext(ctx, step.Command, step.Args...)
	cmd.Dir = step.Dir
	cmd.Env = append(os.Environ(), step.Env...)

	stdoutReader, stdoutWriter := io.Pipe()
	stderrReader, stderrWriter := io.Pipe()

	cmd.Stdout = stdoutWriter
	cmd.Stderr = stderrWriter

	configureGroup(cmd)

	if err := cmd.Start(); err != nil {
		stdoutWriter.Close()
		stderrWriter.Close()

		return fmt.Errorf("%w: %w", errors.ErrFailedToStartCommand, err)
	}

	r.log.Debug().Msgf("Started step '%s' (PID: %d)", step.Name, cmd.Process.Pid)
	r.bus.Publish(bus.Message{
		Type: bus.EventStepStarted,
		Data: bus.StepStarted{Name: step.Name, Index: index + 1, Total: total, PID: cmd.Process.Pid},
	})

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()
		r.stream(stdoutReader, step.Name, "STDOUT", func(line string) { rules.Apply(r.classifier, sink, line) })
	}()

	go func() {
		defer wg.Done()
		r.stream(stderrReader, step.Name, "STDERR", func(line string) { r.appendStderr(sink, line) })
	}()

	err := cmd.Wait()

	stdoutWriter.Close()
	stderrWriter.Close()
	wg.Wait()

	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrStepFailed, err)
	}

	return nil
}

// appendStderr classifies a stderr line, falling back to gray when no rule styles it
func (r *runner) appendStderr(sink logview.Sink, line string) {
	style := r.classifier.Classify(line)
	if style.Color == logview.Black && !style.Important {
		style.Color = logview.Gray
	}

	sink.AppendStyledLine(line, style.Color, style.Important)
}

// stream feeds every line read from src to emit
func (r *runner) stream(src io.Reader, stepName, streamType string, emit func(string)) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerMaxBufferSize)

	for scanner.Scan() {
		emit(scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		r.log.Error().Err(err).Msgf("Error reading %s stream for step '%s'", streamType, stepName)
		// Unblock the writer side so Wait can return
		_, _ = io.Copy(io.Discard, src)
	}
}

// summarize appends the final plan verdict
func (r *runner) summarize(sink logview.Sink, result *Result) {
	color := logview.Green
	if result.State != Passed {
		color = logview.Red
	}

	sink.AppendStyledLine(
		fmt.Sprintf("Plan %s %s: %d passed, %d failed, %d skipped in %s",
			result.Plan, result.State, result.Passed, result.Failed, result.Skipped, result.Duration.Round(time.Millisecond)),
		color,
		true,
	)
}

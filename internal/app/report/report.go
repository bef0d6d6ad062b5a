//go:generate mockgen -source=report.go -destination=report_mock.go -package=report
package report

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"

	"tlog/internal/app/bus"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// Reporter forwards failures to an error tracker
type Reporter interface {
	CaptureError(err error, tags map[string]string)
	Watch(ctx context.Context, b bus.Bus)
	Flush() bool
}

// reporter sends events through a dedicated sentry hub
type reporter struct {
	hub *sentry.Hub
	log logger.Logger
}

// New creates a Reporter; without a DSN it discards everything
func New(cfg *config.Config, log logger.Logger) (Reporter, error) {
	return newWithOptions(sentry.ClientOptions{
		Dsn:         cfg.Report.DSN,
		Environment: cfg.Report.Environment,
		Release:     config.AppName + "@" + config.Version,
	}, log)
}

func newWithOptions(opts sentry.ClientOptions, log logger.Logger) (Reporter, error) {
	log = log.WithComponent("REPORT")

	if opts.Dsn == "" {
		log.Debug().Msg("No DSN configured, error reporting disabled")
		return NoOp(), nil
	}

	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry client: %w", err)
	}

	log.Debug().Msgf("Error reporting enabled for environment '%s'", opts.Environment)

	return &reporter{hub: sentry.NewHub(client, sentry.NewScope()), log: log}, nil
}

// CaptureError sends err with the given tags
func (r *reporter) CaptureError(err error, tags map[string]string) {
	if err == nil {
		return
	}

	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		r.hub.CaptureException(err)
	})
}

// Watch reports step and source failures published on b until ctx is done
func (r *reporter) Watch(ctx context.Context, b bus.Bus) {
	events := b.Subscribe(ctx)

	go func() {
		for msg := range events {
			switch data := msg.Data.(type) {
			case bus.StepFailed:
				r.CaptureError(data.Error, map[string]string{"step": data.Name})
			case bus.SourceFailed:
				r.CaptureError(data.Error, map[string]string{"source": data.Kind})
			}
		}
	}()
}

// Flush waits for queued events to be delivered
func (r *reporter) Flush() bool {
	ok := r.hub.Flush(config.ReportFlushTimeout)
	if !ok {
		r.log.Warn().Msg("Timed out flushing error reports")
	}

	return ok
}

// NoOp returns a Reporter that drops everything
func NoOp() Reporter {
	return noOpReporter{}
}

type noOpReporter struct{}

func (noOpReporter) CaptureError(error, map[string]string) {}
func (noOpReporter) Watch(context.Context, bus.Bus)        {}
func (noOpReporter) Flush() bool                           { return true }

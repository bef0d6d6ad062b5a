package source

import (
	"bufio"
	"context"
	"io"

	"tlog/internal/app/bus"
	"tlog/internal/app/logview"
	"tlog/internal/app/rules"
	"tlog/internal/config/logger"
)

// Source kinds reported on the bus
const (
	KindStdin  = "stdin"
	KindFile   = "file"
	KindRemote = "remote"
)

// Scanner buffer sizes for line input
const (
	scannerBufferSize    = 64 * 1024
	scannerMaxBufferSize = 1024 * 1024
)

// Source produces lines into a sink until its input ends or ctx is done
type Source interface {
	Run(ctx context.Context, sink logview.Sink) error
}

// reader implements Source over an io.Reader
type reader struct {
	kind       string
	name       string
	input      io.Reader
	classifier rules.Classifier
	bus        bus.Bus
	log        logger.Logger
}

// NewReader creates a Source that classifies every line read from input; kind and name label it on the bus
func NewReader(kind, name string, input io.Reader, classifier rules.Classifier, b bus.Bus, log logger.Logger) Source {
	return &reader{
		kind:       kind,
		name:       name,
		input:      input,
		classifier: classifier,
		bus:        b,
		log:        log.WithComponent("READER"),
	}
}

// Run returns when input reaches EOF or ctx is done, whichever comes first
func (r *reader) Run(ctx context.Context, sink logview.Sink) error {
	r.bus.Publish(bus.Message{
		Type: bus.EventSourceStarted,
		Data: bus.SourceStarted{Kind: r.kind, Target: r.name},
	})

	done := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, scannerBufferSize), scannerMaxBufferSize)

		for scanner.Scan() {
			if ctx.Err() != nil {
				break
			}

			rules.Apply(r.classifier, sink, scanner.Text())
		}

		done <- scanner.Err()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-done:
		if err != nil {
			r.log.Error().Err(err).Msgf("Failed reading %s", r.name)
			r.bus.Publish(bus.Message{
				Type:     bus.EventSourceFailed,
				Data:     bus.SourceFailed{Kind: r.kind, Error: err},
				Critical: true,
			})

			return err
		}

		r.log.Debug().Msgf("Reached end of %s", r.name)

		return nil
	}
}

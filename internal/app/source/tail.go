package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"tlog/internal/app/bus"
	"tlog/internal/app/errors"
	"tlog/internal/app/logview"
	"tlog/internal/app/rules"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

// tail implements Source by following a file
type tail struct {
	path       string
	tailLines  int
	offset     int64
	classifier rules.Classifier
	bus        bus.Bus
	log        logger.Logger
}

// NewTail creates a Source that shows the last lines of path and then follows it
func NewTail(path string, cfg *config.Config, classifier rules.Classifier, b bus.Bus, log logger.Logger) Source {
	tailLines := cfg.View.TailLines
	if tailLines <= 0 {
		tailLines = config.DefaultTailLines
	}

	return &tail{
		path:       path,
		tailLines:  tailLines,
		classifier: classifier,
		bus:        b,
		log:        log.WithComponent("TAIL"),
	}
}

// Run follows the file until ctx is done
func (t *tail) Run(ctx context.Context, sink logview.Sink) error {
	abs, err := filepath.Abs(t.path)
	if err != nil {
		return fmt.Errorf("%w %s: %w", errors.ErrFailedToOpenFile, t.path, err)
	}

	t.path = abs

	last := newRing(t.tailLines)

	offset, err := readLines(t.path, 0, last.add)
	if err != nil {
		return t.fail(fmt.Errorf("%w %s: %w", errors.ErrFailedToOpenFile, t.path, err))
	}

	t.offset = offset

	for _, line := range last.lines() {
		rules.Apply(t.classifier, sink, line)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return t.fail(fmt.Errorf("%w: %w", errors.ErrFailedToWatchFile, err))
	}
	defer watcher.Close()

	// The directory is watched so a recreated file is picked up
	if err := watcher.Add(filepath.Dir(t.path)); err != nil {
		return t.fail(fmt.Errorf("%w %s: %w", errors.ErrFailedToWatchFile, t.path, err))
	}

	t.log.Info().Msgf("Following %s", t.path)
	t.bus.Publish(bus.Message{
		Type: bus.EventSourceStarted,
		Data: bus.SourceStarted{Kind: KindFile, Target: t.path},
	})

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(event.Name) != t.path {
				continue
			}

			t.handleEvent(event, sink)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			t.log.Error().Err(err).Msg("Watcher error")
		}
	}
}

// handleEvent reacts to a change of the followed file
func (t *tail) handleEvent(event fsnotify.Event, sink logview.Sink) {
	switch {
	case event.Has(fsnotify.Create):
		t.reset(sink, "recreated")
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		t.log.Debug().Msgf("%s went away, waiting for it to return", t.path)
		return
	case event.Has(fsnotify.Write):
		info, err := os.Stat(t.path)
		if err != nil {
			return
		}

		if info.Size() < t.offset {
			t.reset(sink, "truncated")
		}
	default:
		return
	}

	t.follow(sink)
}

// reset starts over from the beginning of the file
func (t *tail) reset(sink logview.Sink, reason string) {
	t.log.Info().Msgf("%s was %s, starting over", t.path, reason)

	t.offset = 0

	sink.Clear()
	t.bus.Publish(bus.Message{
		Type: bus.EventSourceReset,
		Data: bus.SourceReset{Kind: KindFile, Target: t.path},
	})
}

// follow emits every complete line written since the last read
func (t *tail) follow(sink logview.Sink) {
	offset, err := readLines(t.path, t.offset, func(line string) {
		rules.Apply(t.classifier, sink, line)
	})
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			t.log.Warn().Err(err).Msgf("Failed to read %s", t.path)
		}

		return
	}

	t.offset = offset
}

func (t *tail) fail(err error) error {
	t.bus.Publish(bus.Message{
		Type:     bus.EventSourceFailed,
		Data:     bus.SourceFailed{Kind: KindFile, Error: err},
		Critical: true,
	})

	return err
}

// readLines emits each newline-terminated line of path after offset and returns the offset past the last one.
// A trailing partial line is left for the next read
func readLines(path string, offset int64, emit func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return offset, err
	}
	defer file.Close()

	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, err
	}

	r := bufio.NewReaderSize(file, scannerBufferSize)

	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return offset, nil
			}

			return offset, err
		}

		offset += int64(len(line))

		emit(strings.TrimRight(line, "\r\n"))
	}
}

// ring keeps the most recent lines added to it
type ring struct {
	buf   []string
	next  int
	count int
}

func newRing(size int) *ring {
	return &ring{buf: make([]string, size)}
}

func (r *ring) add(line string) {
	r.buf[r.next] = line
	r.next = (r.next + 1) % len(r.buf)

	if r.count < len(r.buf) {
		r.count++
	}
}

// lines returns the retained lines, oldest first
func (r *ring) lines() []string {
	out := make([]string, r.count)

	if r.count < len(r.buf) {
		copy(out, r.buf[:r.count])
		return out
	}

	for i := range out {
		out[i] = r.buf[(r.next+i)%len(r.buf)]
	}

	return out
}

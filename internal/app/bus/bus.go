//go:generate mockgen -source=bus.go -destination=bus_mock.go -package=bus
package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tlog/internal/config/logger"
)

// MessageType represents the type of message
type MessageType string

// Event types
const (
	EventPlanStarted        MessageType = "plan_started"
	EventPlanFinished       MessageType = "plan_finished"
	EventStepStarted        MessageType = "step_started"
	EventStepPassed         MessageType = "step_passed"
	EventStepFailed         MessageType = "step_failed"
	EventRunStateChanged    MessageType = "run_state_changed"
	EventSourceStarted      MessageType = "source_started"
	EventSourceFailed       MessageType = "source_failed"
	EventSourceReset        MessageType = "source_reset"
	EventClientConnected    MessageType = "client_connected"
	EventClientDisconnected MessageType = "client_disconnected"
)

// Message represents a bus message
type Message struct {
	Type      MessageType
	Timestamp time.Time
	Data      interface{}
	Critical  bool
}

// PlanStarted indicates a test plan has begun
type PlanStarted struct {
	Name  string
	Steps []string
}

// PlanFinished carries the outcome of a test plan
type PlanFinished struct {
	Name     string
	State    string
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

// StepStarted indicates a step's process is running
type StepStarted struct {
	Name  string
	Index int
	Total int
	PID   int
}

// StepPassed indicates a step exited cleanly
type StepPassed struct {
	Name     string
	Duration time.Duration
}

// StepFailed indicates a step failed to start, exited non-zero or timed out
type StepFailed struct {
	Name  string
	Error error
}

// RunStateChanged carries a run state machine transition
type RunStateChanged struct {
	From string
	To   string
}

// SourceStarted indicates a line source is producing
type SourceStarted struct {
	Kind   string
	Target string
}

// SourceFailed indicates a line source stopped with an error
type SourceFailed struct {
	Kind  string
	Error error
}

// SourceReset indicates a source restarted from the beginning, e.g. a truncated file
type SourceReset struct {
	Kind   string
	Target string
}

// Client identifies a remote connection
type Client struct {
	Remote string
}

// Bus handles pub/sub messaging
type Bus interface {
	Subscribe(ctx context.Context) <-chan Message
	Publish(msg Message)
	Close()
}

// bus implements the Bus interface with pub/sub messaging
type bus struct {
	bufferSize  int
	subscribers []chan Message
	mu          sync.RWMutex
	closed      bool
	log         logger.Logger
}

// New creates a new Bus whose subscriber channels hold bufferSize messages
func New(bufferSize int, log logger.Logger) Bus {
	return &bus{
		bufferSize:  bufferSize,
		subscribers: make([]chan Message, 0),
		log:         log,
	}
}

// Subscribe creates a subscription channel that closes when ctx is done
func (b *bus) Subscribe(ctx context.Context) <-chan Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Message, b.bufferSize)

	if b.closed {
		close(ch)
		return ch
	}

	b.subscribers = append(b.subscribers, ch)

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch)
	}()

	return ch
}

// Publish sends a message to all subscribers; non-critical messages are dropped for full subscribers
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	msg.Timestamp = time.Now()

	if b.log != nil {
		b.log.Debug().Msgf("%s %s", msg.Type, formatData(msg.Data))
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			if msg.Critical {
				go func(c chan Message, m Message) {
					defer func() { _ = recover() }()

					c <- m
				}(ch, msg)
			}
		}
	}
}

// Close closes all subscriber channels
func (b *bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for _, ch := range b.subscribers {
		close(ch)
	}

	b.subscribers = nil
}

func (b *bus) unsubscribe(ch chan Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscribers {
		if sub == ch {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)

			close(ch)

			break
		}
	}
}

func formatData(data interface{}) string {
	switch d := data.(type) {
	case PlanStarted:
		return fmt.Sprintf("{plan: %s, steps: %d}", d.Name, len(d.Steps))
	case PlanFinished:
		return fmt.Sprintf("{plan: %s, state: %s, passed: %d, failed: %d}", d.Name, d.State, d.Passed, d.Failed)
	case StepStarted:
		return fmt.Sprintf("{step: %s, %d/%d, pid: %d}", d.Name, d.Index, d.Total, d.PID)
	case StepPassed:
		return fmt.Sprintf("{step: %s, duration: %s}", d.Name, d.Duration)
	case StepFailed:
		return fmt.Sprintf("{step: %s, error: %v}", d.Name, d.Error)
	case RunStateChanged:
		return fmt.Sprintf("{%s → %s}", d.From, d.To)
	case SourceStarted:
		return fmt.Sprintf("{source: %s, target: %s}", d.Kind, d.Target)
	case SourceFailed:
		return fmt.Sprintf("{source: %s, error: %v}", d.Kind, d.Error)
	case SourceReset:
		return fmt.Sprintf("{source: %s, target: %s}", d.Kind, d.Target)
	case Client:
		return fmt.Sprintf("{remote: %s}", d.Remote)
	default:
		return fmt.Sprintf("%+v", data)
	}
}

// NoOp returns a bus that delivers nothing
func NoOp() Bus {
	return &noOpBus{}
}

type noOpBus struct{}

func (n *noOpBus) Subscribe(ctx context.Context) <-chan Message {
	ch := make(chan Message)

	go func() {
		<-ctx.Done()
		close(ch)
	}()

	return ch
}

func (n *noOpBus) Publish(msg Message) {}
func (n *noOpBus) Close()              {}

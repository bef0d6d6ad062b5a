package logview

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher submits messages to the Bubble Tea program that owns the view.
// Messages sent before a program is attached are queued and delivered in
// submission order once Attach is called.
type Dispatcher struct {
	mu       sync.Mutex
	send     func(tea.Msg)
	pending  []tea.Msg
	flushing bool
}

// NewDispatcher creates a detached Dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach sets the send function, usually tea.Program.Send, and drains the queue
func (d *Dispatcher) Attach(send func(tea.Msg)) {
	d.mu.Lock()

	d.send = send

	if len(d.pending) == 0 || d.flushing {
		d.mu.Unlock()
		return
	}

	d.flushing = true
	d.mu.Unlock()

	// Program.Send blocks until the event loop runs, so the queue drains off the caller's goroutine
	go d.flush()
}

// Detach drops the send function; later messages queue until the next Attach
func (d *Dispatcher) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.send = nil
}

// Send delivers msg to the attached program or queues it
func (d *Dispatcher) Send(msg tea.Msg) {
	d.mu.Lock()

	if d.send == nil || d.flushing {
		d.pending = append(d.pending, msg)
		d.mu.Unlock()

		return
	}

	send := d.send
	d.mu.Unlock()

	send(msg)
}

// Pending returns the number of queued messages
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.pending)
}

func (d *Dispatcher) flush() {
	for {
		d.mu.Lock()

		if len(d.pending) == 0 || d.send == nil {
			d.flushing = false
			d.mu.Unlock()

			return
		}

		msg := d.pending[0]
		d.pending[0] = nil
		d.pending = d.pending[1:]
		send := d.send

		d.mu.Unlock()

		send(msg)
	}
}

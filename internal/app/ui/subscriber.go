package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tlog/internal/app/bus"
)

// Sender delivers messages to the program's event loop
type Sender interface {
	Send(msg tea.Msg)
}

// Subscriber forwards bus events to the model through a Sender
type Subscriber struct {
	bus    bus.Bus
	sender Sender
}

// NewSubscriber creates a new bus subscriber
func NewSubscriber(b bus.Bus, sender Sender) *Subscriber {
	return &Subscriber{
		bus:    b,
		sender: sender,
	}
}

// Start subscribes immediately and forwards events until ctx is done
func (s *Subscriber) Start(ctx context.Context) {
	events := s.bus.Subscribe(ctx)

	go s.processEvents(events)
}

func (s *Subscriber) processEvents(events <-chan bus.Message) {
	for msg := range events {
		s.sender.Send(busMsg(msg))
	}
}

//go:generate mockgen -source=logview.go -destination=logview_mock.go -package=logview
package logview

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Sink receives log lines
type Sink interface {
	AppendLine(text string)
	AppendStyledLine(text string, color Color, important bool)
	Clear()
}

type appendMsg struct {
	line Line
}

type clearMsg struct{}

// scrollToEndMsg arrives one loop iteration after the append that requested it, once View has laid out the new line
type scrollToEndMsg struct{}

// LogView is the goroutine-safe handle to a Model running inside a Bubble Tea program
type LogView struct {
	dispatcher *Dispatcher
}

// New creates a LogView that submits its work through dispatcher
func New(dispatcher *Dispatcher) *LogView {
	return &LogView{dispatcher: dispatcher}
}

// AppendLine appends text in the default color without emphasis
func (v *LogView) AppendLine(text string) {
	v.AppendStyledLine(text, Black, false)
}

// AppendStyledLine appends a line and then scrolls to it
func (v *LogView) AppendStyledLine(text string, color Color, important bool) {
	v.dispatcher.Send(appendMsg{line: NewLine(text, color, important)})
}

// Clear removes every line
func (v *LogView) Clear() {
	v.dispatcher.Send(clearMsg{})
}

func scrollToEnd() tea.Msg {
	return scrollToEndMsg{}
}

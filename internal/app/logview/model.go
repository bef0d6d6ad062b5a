package logview

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultWidth = 80

// Options configures a Model
type Options struct {
	MaxLines int  // oldest lines are dropped beyond this count; 0 keeps everything
	Follow   bool // scroll to each new line
	Padding  int  // blank columns on each side of the text
}

// DefaultOptions returns options with follow enabled and one column of padding
func DefaultOptions() Options {
	return Options{Follow: true, Padding: 1}
}

// Model owns the ordered line sequence and the scroll container that shows it.
// It is only touched from the Bubble Tea event loop.
type Model struct {
	lines       []Line
	rendered    []string
	renderWidth int
	maxLines    int
	padding     int
	follow      bool
	viewport    viewport.Model
	keys        KeyMap
	width       int
	height      int
}

// NewModel creates an empty log view model
func NewModel(opts Options) Model {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true

	padding := opts.Padding
	if padding < 0 {
		padding = 0
	}

	return Model{
		lines:    make([]Line, 0),
		rendered: make([]string, 0),
		maxLines: opts.MaxLines,
		padding:  padding,
		follow:   opts.Follow,
		viewport: vp,
		keys:     DefaultKeyMap(),
	}
}

// Update applies log view messages; it returns the follow-up scroll command after an append
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case appendMsg:
		m.appendLine(msg.line)
		// Scrolling waits for the next loop iteration so View has measured the new rows
		return m, scrollToEnd
	case clearMsg:
		m.clear()
	case scrollToEndMsg:
		if m.follow {
			m.viewport.GotoBottom()
		}
	case tea.KeyMsg:
		return m, m.HandleKey(msg)
	case tea.MouseMsg:
		var cmd tea.Cmd

		m.viewport, cmd = m.viewport.Update(msg)
		m.unfollowIfScrolledAway()

		return m, cmd
	}

	return m, nil
}

// HandleKey processes scrolling, follow and clear keys
func (m *Model) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Follow):
		m.ToggleFollow()
		return nil
	case key.Matches(msg, m.keys.Clear):
		m.clear()
		return nil
	case key.Matches(msg, m.keys.Top):
		m.viewport.GotoTop()
		m.follow = false

		return nil
	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		m.follow = true

		return nil
	}

	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)
	m.unfollowIfScrolledAway()

	return cmd
}

// SetSize updates the viewport dimensions and re-wraps lines when the width changes
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height

	if m.contentWidth() != m.renderWidth {
		m.rerender()
	}

	m.refresh()
}

// ToggleFollow toggles scrolling to new lines
func (m *Model) ToggleFollow() {
	m.SetFollow(!m.follow)
}

// SetFollow enables or disables scrolling to new lines
func (m *Model) SetFollow(follow bool) {
	m.follow = follow
	if follow {
		m.viewport.GotoBottom()
	}
}

// Follow reports whether new lines scroll into view
func (m Model) Follow() bool {
	return m.follow
}

// Lines returns a copy of the current lines in display order
func (m Model) Lines() []Line {
	out := make([]Line, len(m.lines))
	copy(out, m.lines)

	return out
}

// Len returns the number of lines
func (m Model) Len() int {
	return len(m.lines)
}

// AtBottom reports whether the last row is visible
func (m Model) AtBottom() bool {
	return m.viewport.AtBottom()
}

// YOffset returns the index of the first visible row
func (m Model) YOffset() int {
	return m.viewport.YOffset
}

// Rows returns the number of rendered rows after wrapping
func (m Model) Rows() int {
	if len(m.lines) == 0 {
		return 0
	}

	return m.viewport.TotalLineCount()
}

// Keys returns the key bindings handled by the view
func (m Model) Keys() KeyMap {
	return m.keys
}

func (m *Model) appendLine(line Line) {
	m.lines = append(m.lines, line)
	m.rendered = append(m.rendered, m.renderLine(line, m.contentWidth()))

	if m.maxLines > 0 && len(m.lines) > m.maxLines {
		drop := len(m.lines) - m.maxLines
		m.lines = append(m.lines[:0:0], m.lines[drop:]...)
		m.rendered = append(m.rendered[:0:0], m.rendered[drop:]...)
	}

	m.refresh()
}

func (m *Model) clear() {
	m.lines = make([]Line, 0)
	m.rendered = make([]string, 0)
	m.viewport.SetContent("")
	m.viewport.GotoTop()
}

func (m *Model) unfollowIfScrolledAway() {
	if m.follow && !m.viewport.AtBottom() {
		m.follow = false
	}
}

func (m *Model) contentWidth() int {
	width := m.viewport.Width
	if width <= 0 {
		width = defaultWidth
	}

	return width
}

package logview

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder attaches a dispatcher that collects messages instead of sending them to a program
func recorder() (*LogView, *[]tea.Msg) {
	msgs := &[]tea.Msg{}
	d := NewDispatcher()
	d.Attach(func(msg tea.Msg) { *msgs = append(*msgs, msg) })

	return New(d), msgs
}

// drain plays messages through the model the way the event loop would:
// Update, render, then run the returned command and queue its message
func drain(m *Model, msgs ...tea.Msg) {
	queue := append([]tea.Msg(nil), msgs...)

	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		var cmd tea.Cmd

		m, cmd = m.Update(msg)
		_ = m.View()

		if cmd == nil {
			continue
		}

		if next := cmd(); next != nil {
			queue = append(queue, next)
		}
	}
}

func texts(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Text)
	}

	return out
}

func Test_NewModel(t *testing.T) {
	m := NewModel(DefaultOptions())

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Rows())
	assert.True(t, m.Follow())
	assert.Contains(t, m.View(), emptyStateText)
}

func Test_AppendLine_UsesDefaults(t *testing.T) {
	view, msgs := recorder()

	view.AppendLine("Starting test")
	view.AppendStyledLine("Starting test", Black, false)

	require.Len(t, *msgs, 2)
	assert.Equal(t, (*msgs)[1], (*msgs)[0])

	msg, ok := (*msgs)[0].(appendMsg)
	require.True(t, ok)
	assert.Equal(t, Black, msg.line.Color)
	assert.False(t, msg.line.Important)
	assert.Equal(t, NormalSize, msg.line.Size())
}

func Test_Model_AppendKeepsOrderAndScrollsToLast(t *testing.T) {
	view, msgs := recorder()

	m := NewModel(DefaultOptions())
	m.SetSize(40, 1)

	view.AppendLine("A")
	view.AppendLine("B")
	view.AppendLine("C")

	drain(&m, *msgs...)

	assert.Equal(t, []string{"A", "B", "C"}, texts(m.Lines()))
	assert.True(t, m.AtBottom())
	assert.Equal(t, 2, m.YOffset())
	assert.Contains(t, m.View(), "C")
	assert.NotContains(t, m.View(), "A")
}

func Test_Model_AppendThenClear(t *testing.T) {
	view, msgs := recorder()

	m := NewModel(DefaultOptions())
	m.SetSize(40, 5)

	view.AppendLine("Starting test")
	view.AppendStyledLine("FAILED: assertion X", Red, true)
	view.Clear()

	drain(&m, *msgs...)

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.Rows())
	assert.Equal(t, 0, m.YOffset())
	assert.Contains(t, m.View(), emptyStateText)
}

func Test_Model_ScrollWaitsForNextCycle(t *testing.T) {
	m := NewModel(DefaultOptions())
	m.SetSize(40, 1)

	drain(&m, appendMsg{line: NewLine("first", Black, false)})

	_, cmd := m.Update(appendMsg{line: NewLine("second", Black, false)})
	require.NotNil(t, cmd)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 0, m.YOffset(), "scroll must not happen in the same update as the append")

	msg := cmd()
	assert.IsType(t, scrollToEndMsg{}, msg)

	m.Update(msg)
	assert.Equal(t, 1, m.YOffset())
	assert.True(t, m.AtBottom())
}

func Test_Model_NoScrollWhenNotFollowing(t *testing.T) {
	m := NewModel(Options{Follow: false})
	m.SetSize(40, 1)

	drain(&m,
		appendMsg{line: NewLine("one", Black, false)},
		appendMsg{line: NewLine("two", Black, false)},
		appendMsg{line: NewLine("three", Black, false)},
	)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 0, m.YOffset())
	assert.False(t, m.AtBottom())
}

func Test_Model_MaxLines(t *testing.T) {
	m := NewModel(Options{MaxLines: 2, Follow: true})

	msgs := make([]tea.Msg, 0, 5)
	for i := 1; i <= 5; i++ {
		msgs = append(msgs, appendMsg{line: NewLine(fmt.Sprintf("line %d", i), Black, false)})
	}

	drain(&m, msgs...)

	assert.Equal(t, []string{"line 4", "line 5"}, texts(m.Lines()))
	assert.Equal(t, 2, m.Rows())
}

func Test_Model_ImportantStyling(t *testing.T) {
	m := NewModel(Options{Padding: 0})
	m.SetSize(40, 5)

	drain(&m,
		appendMsg{line: NewLine("plain", Black, false)},
		appendMsg{line: NewLine("loud", Red, true)},
	)

	rows := strings.Split(m.View(), "\n")
	require.GreaterOrEqual(t, len(rows), 2)
	assert.True(t, strings.HasPrefix(rows[0], normalMarker+"plain"))
	assert.Contains(t, rows[1], importantMarker)
	assert.Contains(t, rows[1], "loud")
}

func Test_Model_WrapsLongLinesAndRewrapsOnResize(t *testing.T) {
	m := NewModel(Options{Padding: 0, Follow: true})
	m.SetSize(12, 10)

	drain(&m, appendMsg{line: NewLine("alpha beta gamma delta", Black, false)})
	assert.Equal(t, 1, m.Len())
	assert.Greater(t, m.Rows(), 1)

	narrowRows := m.Rows()

	m.SetSize(80, 10)
	assert.Equal(t, 1, m.Rows())
	assert.Less(t, m.Rows(), narrowRows)
}

func Test_Model_HandleKey(t *testing.T) {
	newFilled := func() Model {
		m := NewModel(DefaultOptions())
		m.SetSize(40, 1)
		drain(&m,
			appendMsg{line: NewLine("a", Black, false)},
			appendMsg{line: NewLine("b", Black, false)},
			appendMsg{line: NewLine("c", Black, false)},
		)

		return m
	}

	tests := []struct {
		name   string
		key    tea.KeyMsg
		follow bool
		lines  int
		offset int
	}{
		{name: "f toggles follow off", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}, follow: false, lines: 3, offset: 2},
		{name: "ctrl+l clears", key: tea.KeyMsg{Type: tea.KeyCtrlL}, follow: true, lines: 0, offset: 0},
		{name: "g jumps to top and stops following", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")}, follow: false, lines: 3, offset: 0},
		{name: "up scrolls away and stops following", key: tea.KeyMsg{Type: tea.KeyUp}, follow: false, lines: 3, offset: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newFilled()
			m.Update(tt.key)

			assert.Equal(t, tt.follow, m.Follow())
			assert.Equal(t, tt.lines, m.Len())
			assert.Equal(t, tt.offset, m.YOffset())
		})
	}
}

func Test_Model_BottomKeyResumesFollow(t *testing.T) {
	m := NewModel(Options{Follow: false})
	m.SetSize(40, 1)

	drain(&m,
		appendMsg{line: NewLine("a", Black, false)},
		appendMsg{line: NewLine("b", Black, false)},
	)
	require.False(t, m.Follow())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})

	assert.True(t, m.Follow())
	assert.True(t, m.AtBottom())
}

package components

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func Test_DefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{name: "quit", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, binding: keys.Quit},
		{name: "force quit", msg: tea.KeyMsg{Type: tea.KeyCtrlC}, binding: keys.ForceQuit},
		{name: "help", msg: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, binding: keys.Help},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

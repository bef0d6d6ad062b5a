package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"tlog/internal/app/logview"
	"tlog/internal/app/ui/components"
)

// KeyMap combines the shell bindings with the log view bindings for help rendering
type KeyMap struct {
	components.KeyMap
	View logview.KeyMap
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap(view logview.KeyMap) KeyMap {
	return KeyMap{
		KeyMap: components.DefaultKeyMap(),
		View:   view,
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.View.Follow, k.View.Top, k.View.Bottom, k.Help, k.Quit}
}

// FullHelp returns every binding grouped in columns
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.View.Up, k.View.Down, k.View.PageUp, k.View.PageDown},
		{k.View.Top, k.View.Bottom, k.View.Follow, k.View.Clear},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

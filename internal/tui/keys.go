package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the interactive view.
type KeyMap struct {
	PlayPause key.Binding
	Next      key.Binding
	Previous  key.Binding
	Stop      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("n", "next track"),
		),
		Previous: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("p", "previous track"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PlayPause, k.Previous, k.Next, k.Stop, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

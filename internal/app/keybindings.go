package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the application. Keys not bound here
// go to the current pane.
type KeyMap struct {
	Quit  key.Binding
	Help  key.Binding
	Theme key.Binding

	// Visibility of each pane, standing in for external layout changes
	TogglePane1 key.Binding
	TogglePane2 key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		TogglePane1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "cycle pane 1 visibility"),
		),
		TogglePane2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "cycle pane 2 visibility"),
		),
	}
}

// ShortHelp returns the short help text for the key map.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.TogglePane1, k.TogglePane2, k.Quit}
}

// FullHelp returns the full help text for the key map.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePane1, k.TogglePane2},
		{k.Theme, k.Help, k.Quit},
	}
}

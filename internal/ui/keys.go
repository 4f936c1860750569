package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for the menu, the settings form and the running view.
type KeyMap struct {
	// Common
	Quit       key.Binding
	ToggleHelp key.Binding

	// Menu navigation
	Up     key.Binding
	Down   key.Binding
	Select key.Binding

	// Settings form
	Back key.Binding

	// Running
	Stop       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s", "enter", "esc"),
			key.WithHelp("s/enter", "stop"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "up", "k"),
			key.WithHelp("pgup/↑", "scroll log"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "down", "j"),
			key.WithHelp("pgdn/↓", "scroll log"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShortSeparator = " • "
	return h
}

type stateKeyMap struct {
	keys  KeyMap
	state State
}

// ForState returns a contextual key map implementing help.KeyMap for the given state.
func (k KeyMap) ForState(s State) help.KeyMap {
	return stateKeyMap{keys: k, state: s}
}

func (s stateKeyMap) ShortHelp() []key.Binding {
	switch s.state {
	case StateMenu:
		return []key.Binding{s.keys.Up, s.keys.Down, s.keys.Select, s.keys.ToggleHelp, s.keys.Quit}
	case StateSettings:
		return []key.Binding{s.keys.Back}
	case StateRunning:
		return []key.Binding{s.keys.Stop, s.keys.ScrollUp, s.keys.Quit, s.keys.ToggleHelp}
	default:
		return []key.Binding{s.keys.ToggleHelp, s.keys.Quit}
	}
}

func (s stateKeyMap) FullHelp() [][]key.Binding {
	switch s.state {
	case StateMenu:
		return [][]key.Binding{{s.keys.Up, s.keys.Down, s.keys.Select}, {s.keys.ToggleHelp, s.keys.Quit}}
	case StateSettings:
		return [][]key.Binding{{s.keys.Back}}
	case StateRunning:
		return [][]key.Binding{{s.keys.Stop, s.keys.ScrollUp, s.keys.ScrollDown}, {s.keys.ToggleHelp, s.keys.Quit}}
	default:
		return [][]key.Binding{{s.keys.ToggleHelp, s.keys.Quit}}
	}
}

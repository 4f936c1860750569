package ui

// State is the screen the TUI is showing.
type State int

const (
	StateMenu State = iota
	StateSettings
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "Menu"
	case StateSettings:
		return "Settings"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Package ui provides the terminal user interface for the mouse jiggler.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Warning:   lipgloss.AdaptiveColor{Light: "#C48A00", Dark: "#F5C542"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style

	Running lipgloss.Style
	Paused  lipgloss.Style
	Stopped lipgloss.Style

	Countdown            lipgloss.Style
	ProgressBar          lipgloss.Style
	ProgressBarContainer lipgloss.Style

	LogPanel lipgloss.Style
	LogWarn  lipgloss.Style
	LogError lipgloss.Style

	Help  lipgloss.Style
	Error lipgloss.Style
}

// DefaultStyle returns the default style configuration
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	return Style{
		Title: base.
			Bold(true).
			Foreground(defaultColors.Highlight),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(defaultColors.Highlight),

		Unselected: lipgloss.NewStyle().
			Foreground(defaultColors.Subtle),

		Running: base.
			Bold(true).
			Foreground(defaultColors.Special),

		Paused: base.
			Bold(true).
			Foreground(defaultColors.Warning),

		Stopped: base.
			Foreground(defaultColors.Subtle),

		Countdown: base.
			Foreground(defaultColors.Highlight).
			Bold(true),

		ProgressBar: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#333333"}),

		ProgressBarContainer: lipgloss.NewStyle().
			PaddingLeft(1),

		LogPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultColors.Subtle).
			Padding(0, 1),

		LogWarn: lipgloss.NewStyle().
			Foreground(defaultColors.Warning),

		LogError: lipgloss.NewStyle().
			Foreground(defaultColors.Error),

		Help: base.
			Foreground(defaultColors.Subtle),

		Error: base.
			Foreground(defaultColors.Error),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()

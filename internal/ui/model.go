package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stigoleg/mouse-jiggler/internal/config"
	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
)

const (
	maxLogLines   = 500
	defaultWidth  = 60
	logPanelLines = 8
)

// Controller is the part of the scheduler the TUI drives.
type Controller interface {
	Start(cfg jiggle.RunConfig) error
	Stop() error
	State() jiggle.RunState
	Err() error
	TimeRemaining() time.Duration
}

type menuItem struct {
	label string
	mode  string
}

var menuItems = []menuItem{
	{label: "Jiggle non-stop", mode: "nonstop"},
	{label: "Jiggle for a duration", mode: modeDuration},
	{label: "Jiggle between hours", mode: modeBetween},
	{label: "Quit"},
}

// Model holds the state of the TUI.
type Model struct {
	State        State
	Selected     int
	Settings     config.Settings
	Scheduler    Controller
	Status       jiggle.RunState
	Run          jiggle.RunConfig
	Logs         []jiggle.LogLine
	ErrorMessage string
	ShowHelp     bool
	AutoStart    bool

	form   *huh.Form
	values *formValues

	// lastRun is the run id of the newest log line; staleRun is the run that
	// was current when a new one started, whose late lines are dropped.
	lastRun  string
	staleRun string

	logView viewport.Model
	keys    KeyMap
	help    help.Model
	width   int
	version string
}

// InitialModel returns the menu model driving scheduler with settings.
func InitialModel(scheduler Controller, settings config.Settings) Model {
	return Model{
		State:     StateMenu,
		Settings:  settings,
		Scheduler: scheduler,
		AutoStart: settings.AutoStart,
		logView:   viewport.New(defaultWidth, logPanelLines),
		keys:      DefaultKeys(),
		help:      NewHelpModel(),
		width:     defaultWidth,
	}
}

// SetVersion sets the version shown in the title.
func (m *Model) SetVersion(v string) {
	m.version = v
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.AutoStart {
		return func() tea.Msg { return autoStartMsg{} }
	}
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := Update(msg, m)
	return newModel, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// TimeRemaining returns the budget left for a duration run.
func (m Model) TimeRemaining() time.Duration {
	if m.State != StateRunning || m.Scheduler == nil {
		return 0
	}
	return m.Scheduler.TimeRemaining()
}

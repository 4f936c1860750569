package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
)

// tickMsg is sent when the countdown timer ticks
type tickMsg time.Time

// statusMsg and logMsg carry scheduler events into the program.
type statusMsg jiggle.RunState

type logMsg jiggle.LogLine

type autoStartMsg struct{}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.logView.Width = msg.Width - 4
		return m, nil
	case statusMsg:
		return m.onStatus(jiggle.RunState(msg)), nil
	case logMsg:
		return m.onLog(jiggle.LogLine(msg)), nil
	case autoStartMsg:
		cfg, err := m.Settings.RunConfig()
		if err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		return m.start(cfg)
	}

	if m.State == StateSettings && m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.ToggleHelp) {
		m.ShowHelp = !m.ShowHelp
		return m, nil
	}

	switch m.State {
	case StateMenu:
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, m.keys.Up):
				if m.Selected > 0 {
					m.Selected--
				}
			case key.Matches(msg, m.keys.Down):
				if m.Selected < len(menuItems)-1 {
					m.Selected++
				}
			case key.Matches(msg, m.keys.Select):
				return m.selectItem()
			case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
				return m.quit()
			}
		}

	case StateRunning:
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m.quit()
			case key.Matches(msg, m.keys.Stop):
				if err := m.Scheduler.Stop(); err != nil {
					m.ErrorMessage = err.Error()
				}
				m.State = StateMenu
				return m, nil
			case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
				var cmd tea.Cmd
				m.logView, cmd = m.logView.Update(msg)
				return m, cmd
			}
		case tickMsg:
			return m, tick()
		}
	}

	return m, nil
}

func (m Model) selectItem() (Model, tea.Cmd) {
	item := menuItems[m.Selected]
	switch item.mode {
	case "":
		return m.quit()
	case modeDuration, modeBetween:
		m.values = newFormValues(m.Settings, item.mode)
		m.form = buildSettingsForm(m.values)
		m.State = StateSettings
		m.ErrorMessage = ""
		return m, m.form.Init()
	default:
		s := m.Settings
		s.Mode = item.mode
		cfg, err := s.RunConfig()
		if err != nil {
			m.ErrorMessage = err.Error()
			return m, nil
		}
		return m.start(cfg)
	}
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Back) {
		return m.closeForm(), nil
	}

	formModel, cmd := m.form.Update(msg)
	m.form = formModel.(*huh.Form)
	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		return m.closeForm(), nil
	}
	return m, cmd
}

func (m Model) submitForm() (Model, tea.Cmd) {
	s, err := m.values.apply(m.Settings)
	m = m.closeForm()
	if err != nil {
		m.ErrorMessage = err.Error()
		return m, nil
	}
	m.Settings = s

	cfg, err := s.RunConfig()
	if err != nil {
		m.ErrorMessage = err.Error()
		return m, nil
	}
	return m.start(cfg)
}

func (m Model) closeForm() Model {
	m.form = nil
	m.values = nil
	m.State = StateMenu
	return m
}

// start clears the log panel and starts a run.
func (m Model) start(cfg jiggle.RunConfig) (Model, tea.Cmd) {
	m.Logs = nil
	m.logView.SetContent("")
	m.ErrorMessage = ""
	m.staleRun = m.lastRun

	if err := m.Scheduler.Start(cfg); err != nil {
		m.ErrorMessage = err.Error()
		return m, nil
	}
	m.Run = cfg
	m.State = StateRunning
	return m, tick()
}

func (m Model) quit() (Model, tea.Cmd) {
	if m.Scheduler != nil && m.Scheduler.State() != jiggle.Stopped {
		if err := m.Scheduler.Stop(); err != nil {
			m.ErrorMessage = err.Error()
		}
	}
	return m, tea.Quit
}

func (m Model) onStatus(s jiggle.RunState) Model {
	m.Status = s
	// A Stopped event from a run that was replaced in the meantime must not
	// leave the running view.
	if s == jiggle.Stopped && m.State == StateRunning && m.Scheduler.State() == jiggle.Stopped {
		m.State = StateMenu
		if err := m.Scheduler.Err(); err != nil {
			m.ErrorMessage = err.Error()
		}
	}
	return m
}

func (m Model) onLog(line jiggle.LogLine) Model {
	if line.RunID != "" && line.RunID == m.staleRun {
		return m
	}
	m.lastRun = line.RunID
	m.Logs = append(m.Logs, line)
	if len(m.Logs) > maxLogLines {
		m.Logs = m.Logs[len(m.Logs)-maxLogLines:]
	}
	atBottom := m.logView.AtBottom()
	m.logView.SetContent(renderLogs(m.Logs))
	if atBottom {
		m.logView.GotoBottom()
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

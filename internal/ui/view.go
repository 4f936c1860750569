package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"

	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
)

const progressWidth = 30

var (
	gradientFrom, _ = colorful.Hex("#7D56F4")
	gradientTo, _   = colorful.Hex("#43BF6D")
)

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp {
		return helpView()
	}

	var body string
	switch m.State {
	case StateMenu:
		body = menuView(m)
	case StateSettings:
		body = settingsView(m)
	case StateRunning:
		body = runningView(m)
	}

	var b strings.Builder
	b.WriteString(body)
	if m.State != StateSettings && len(m.Logs) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Current.LogPanel.Render(m.logView.View()))
	}
	if m.ErrorMessage != "" {
		b.WriteString("\n\n" + Current.Error.Render(m.ErrorMessage))
	}
	b.WriteString("\n\n" + m.help.View(m.keys.ForState(m.State)))
	return b.String()
}

func title(m Model, text string) string {
	if m.version != "" {
		text = fmt.Sprintf("%s (v%s)", text, m.version)
	}
	return Current.Title.Render(text)
}

func menuView(m Model) string {
	var b strings.Builder

	b.WriteString(title(m, "Mouse Jiggler"))
	b.WriteString("\n\n")
	b.WriteString(Current.Unselected.Render(fmt.Sprintf(" Idle time %d min • move interval %d s",
		m.Settings.IdleCooldown, m.Settings.PollInterval)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.Selected {
			b.WriteString(Current.Selected.Render(" > " + item.label))
		} else {
			b.WriteString(Current.Unselected.Render("   " + item.label))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func settingsView(m Model) string {
	var b strings.Builder
	heading := "Jiggle for a duration"
	if m.values != nil && m.values.mode == modeBetween {
		heading = "Jiggle between hours"
	}
	b.WriteString(title(m, heading))
	b.WriteString("\n\n")
	if m.form != nil {
		b.WriteString(m.form.View())
	}
	return b.String()
}

func runningView(m Model) string {
	var b strings.Builder

	b.WriteString(title(m, "Mouse Jiggler"))
	b.WriteString("\n\n")
	b.WriteString(statusBadge(m.Status))
	b.WriteString(Current.Unselected.Render(describeRun(m.Run)))
	b.WriteString("\n")

	if m.Run.Mode == jiggle.ForDuration && m.Run.DurationLimit > 0 {
		remaining := m.TimeRemaining()
		b.WriteString("\n")
		b.WriteString(Current.Countdown.Render(formatCountdown(remaining) + " remaining"))
		b.WriteString("\n")
		progress := 1.0 - float64(remaining)/float64(m.Run.DurationLimit)
		b.WriteString(Current.ProgressBarContainer.Render(progressBar(progress, progressWidth)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func statusBadge(s jiggle.RunState) string {
	switch s {
	case jiggle.Running:
		return Current.Running.Render("● Running")
	case jiggle.Paused:
		return Current.Paused.Render("● Paused")
	default:
		return Current.Stopped.Render("○ Stopped")
	}
}

func describeRun(cfg jiggle.RunConfig) string {
	switch cfg.Mode {
	case jiggle.ForDuration:
		return "for " + cfg.DurationLimit.String()
	case jiggle.BetweenHours:
		return fmt.Sprintf("between %s and %s", cfg.WindowStart, cfg.WindowEnd)
	default:
		return "non-stop"
	}
}

func formatCountdown(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// progressBar renders fraction (clamped to [0,1]) as width cells shaded
// along a purple to green gradient.
func progressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i >= filled {
			bar.WriteString(Current.ProgressBar.Render(" "))
			continue
		}
		c := gradientFrom.BlendLuv(gradientTo, float64(i)/float64(width-1)).Clamped()
		bar.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render(" "))
	}
	return bar.String()
}

func renderLogs(lines []jiggle.LogLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		switch line.Level {
		case logrus.ErrorLevel:
			b.WriteString(Current.LogError.Render(line.String()))
		case logrus.WarnLevel:
			b.WriteString(Current.LogWarn.Render(line.String()))
		default:
			b.WriteString(line.String())
		}
	}
	return b.String()
}

func helpView() string {
	help := `Mouse Jiggler Help

Usage:
  jiggler [flags]

Flags:
  -i, --idle int          Minutes to pause after real mouse movement (default 3)
  -p, --interval int      Seconds between pointer checks (default 5)
  -m, --mode string       nonstop, duration or between (default "nonstop")
  -d, --duration string   Run length for duration mode (e.g. "2h30m")
      --from string       Window start for between mode (default "09:00")
      --until string      Window end for between mode (default "18:00")
  -s, --start             Start jiggling immediately
      --headless          Run without the TUI
  -c, --config string     YAML settings file
  -v, --version           Show version information

Examples:
  jiggler                              # Start with interactive TUI
  jiggler -m duration -d 2h30m -s      # Jiggle for 2 hours 30 minutes
  jiggler -m between --from 9:00AM --until 5:30PM --headless

Navigation:
  ↑/k, ↓/j  : Navigate menu or scroll the log
  Enter      : Select option / stop
  h          : Toggle this help
  q          : Quit

Press 'h' to close help`

	return Current.Help.Render(help)
}

// Package cli wires settings, logging, the pointer probe and the scheduler
// into the jiggler command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stigoleg/mouse-jiggler/internal/config"
	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
	"github.com/stigoleg/mouse-jiggler/internal/pointer"
	"github.com/stigoleg/mouse-jiggler/internal/pointer/native"
	"github.com/stigoleg/mouse-jiggler/internal/ui"
)

const cleanupTimeout = 5 * time.Second

// ProbeFactory creates the pointer probe used by a run.
type ProbeFactory func() (pointer.Probe, error)

// DetectProbe tries robotgo first, then the Win32 API, then xdotool.
func DetectProbe() (pointer.Probe, error) {
	return pointer.Detect(native.New, pointer.NewUser32, pointer.NewXdotool)
}

// NewRootCommand returns the jiggler command using the platform probe.
func NewRootCommand(version string) *cobra.Command {
	return NewRootCommandWithProbe(version, DetectProbe)
}

// NewRootCommandWithProbe returns the jiggler command with a custom probe factory.
func NewRootCommandWithProbe(version string, newProbe ProbeFactory) *cobra.Command {
	var (
		flagged    config.Settings
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "jiggler",
		Short: "Keep your workstation awake by nudging the mouse",
		Long: `Jiggler moves the mouse pointer by a few pixels at a regular interval so the
system never considers you idle. It pauses while you use the mouse yourself and
can run non-stop, for a fixed duration, or between two times of day.`,
		Example: `  jiggler                                   # interactive TUI
  jiggler -m duration -d 2h30m -s           # jiggle for two and a half hours
  jiggler -m between --from 9:00AM --until 5:30PM --headless`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Resolve(cmd.Flags(), flagged, configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), version, settings, newProbe)
		},
	}
	cmd.SetVersionTemplate("Mouse Jiggler version {{.Version}}\n")

	fs := cmd.Flags()
	config.BindFlags(fs, &flagged)
	fs.StringVarP(&configPath, "config", "c", "", "YAML settings file")
	fs.SortFlags = false

	return cmd
}

func run(ctx context.Context, out io.Writer, version string, settings config.Settings, newProbe ProbeFactory) error {
	if ctx == nil {
		ctx = context.Background()
	}

	log, closeLog, err := newLogger(settings)
	if err != nil {
		return err
	}
	cleanup := jiggle.NewCleanupManager(cleanupTimeout, log)
	defer func() {
		for _, err := range cleanup.Execute() {
			fmt.Fprintln(os.Stderr, "cleanup:", err)
		}
	}()
	cleanup.RegisterFunc("log file", closeLog)

	log.WithField("version", version).Info("cli: starting")

	probe, err := newProbe()
	if err != nil {
		log.WithError(err).Warn("cli: no pointer probe available")
		probe = pointer.Unavailable(err)
	} else {
		log.WithField("probe", probe.Name()).Info("cli: pointer probe ready")
	}

	ctx, stopSignals := watchSignals(ctx, log)
	defer stopSignals()

	if settings.Headless {
		return runHeadless(ctx, out, settings, probe, log, cleanup)
	}
	return runTUI(ctx, version, settings, probe, log, cleanup)
}

func runHeadless(ctx context.Context, out io.Writer, settings config.Settings, probe pointer.Probe, log logrus.FieldLogger, cleanup *jiggle.CleanupManager) error {
	cfg, err := settings.RunConfig()
	if err != nil {
		return err
	}

	var (
		outMu   sync.Mutex
		once    sync.Once
		stopped = make(chan struct{})
	)
	sink := jiggle.SinkFuncs{
		OnLog: func(line jiggle.LogLine) {
			outMu.Lock()
			defer outMu.Unlock()
			fmt.Fprintln(out, line.String())
		},
		OnStatus: func(state jiggle.RunState) {
			if state == jiggle.Stopped {
				once.Do(func() { close(stopped) })
			}
		},
	}

	sched := jiggle.New(probe, sink, jiggle.WithLogger(log))
	cleanup.RegisterFunc("scheduler", sched.Close)

	if err := sched.Start(cfg); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		log.Info("cli: shutting down")
	case <-stopped:
	}

	if err := sched.Close(); err != nil {
		return err
	}
	return sched.Err()
}

func runTUI(ctx context.Context, version string, settings config.Settings, probe pointer.Probe, log logrus.FieldLogger, cleanup *jiggle.CleanupManager) error {
	sink := &ui.ProgramSink{}
	sched := jiggle.New(probe, sink, jiggle.WithLogger(log))
	cleanup.RegisterFunc("scheduler", sched.Close)

	model := ui.InitialModel(sched, settings)
	model.SetVersion(version)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)
	sink.Attach(p)

	finished := make(chan struct{})
	defer close(finished)
	go func() {
		select {
		case <-ctx.Done():
			log.Info("cli: shutting down")
			if err := sched.Stop(); err != nil {
				log.WithError(err).Error("cli: error stopping scheduler")
			}
			p.Kill()
		case <-finished:
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// newLogger builds the logrus logger. In TUI mode the terminal belongs to the
// program, so logs go to a file; headless runs log to stderr.
func newLogger(settings config.Settings) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	level, err := logrus.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(level)

	if settings.Headless {
		log.SetOutput(os.Stderr)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return log, func() error { return nil }, nil
	}

	f, err := tea.LogToFile(settings.LogFile, "jiggler")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return log, f.Close, nil
}

// FormatError renders err for the terminal. Parse errors that carry a list
// of valid formats get a boxed layout.
func FormatError(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, "\n\n"); i >= 0 {
		errorBox := ui.Current.Help.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF4040"))

		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF4040")).
			Render(msg[:i])

		details := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#999999")).
			Render(msg[i+2:])

		return errorBox.Render(header + "\n\n" + details)
	}
	return ui.Current.Error.Render("Error: " + msg)
}

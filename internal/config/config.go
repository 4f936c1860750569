// Package config resolves jiggler settings from defaults, an optional YAML
// file and command-line flags, and turns them into a jiggle.RunConfig.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
	"github.com/stigoleg/mouse-jiggler/internal/util"
)

// ErrOutOfRange is returned when a numeric setting is outside its allowed range.
var ErrOutOfRange = errors.New("setting out of range")

const (
	MinIdleCooldown = 1
	MaxIdleCooldown = 60
	MinPollInterval = 1
	MaxPollInterval = 60
	MinDuration     = time.Hour
	MaxDuration     = 24 * time.Hour
)

// Settings is everything a user can configure. Durations and clock times are
// kept as the strings the user typed so they can be shown back unchanged.
type Settings struct {
	IdleCooldown int    `yaml:"idle_cooldown_minutes"`
	PollInterval int    `yaml:"poll_interval_seconds"`
	Mode         string `yaml:"mode"`
	Duration     string `yaml:"duration"`
	WindowStart  string `yaml:"window_start"`
	WindowEnd    string `yaml:"window_end"`

	LogFile   string `yaml:"log_file"`
	LogLevel  string `yaml:"log_level"`
	Headless  bool   `yaml:"headless"`
	AutoStart bool   `yaml:"auto_start"`
}

// Default returns the settings used when nothing else is configured.
func Default() Settings {
	return Settings{
		IdleCooldown: 3,
		PollInterval: 5,
		Mode:         "nonstop",
		Duration:     "1h",
		WindowStart:  "09:00",
		WindowEnd:    "18:00",
		LogFile:      "jiggler.log",
		LogLevel:     "info",
	}
}

// Load reads a YAML settings file on top of the defaults. Unknown keys are
// rejected so that typos do not go unnoticed.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return s, fmt.Errorf("parse config %s: %w", path, err)
	}
	return s, nil
}

// BindFlags registers the settings flags on fs, writing into dst.
func BindFlags(fs *pflag.FlagSet, dst *Settings) {
	def := Default()
	fs.IntVarP(&dst.IdleCooldown, "idle", "i", def.IdleCooldown, "minutes to pause after real mouse movement (1-60)")
	fs.IntVarP(&dst.PollInterval, "interval", "p", def.PollInterval, "seconds between pointer checks (1-60)")
	fs.StringVarP(&dst.Mode, "mode", "m", def.Mode, "run mode: nonstop, duration or between")
	fs.StringVarP(&dst.Duration, "duration", "d", def.Duration, `run length for duration mode (e.g. "2h30m" or minutes)`)
	fs.StringVar(&dst.WindowStart, "from", def.WindowStart, `start of the active window for between mode (e.g. "09:00", "9:00AM")`)
	fs.StringVar(&dst.WindowEnd, "until", def.WindowEnd, `end of the active window for between mode (e.g. "18:00", "6:00PM")`)
	fs.StringVar(&dst.LogFile, "log-file", def.LogFile, "log file used while the TUI owns the terminal")
	fs.StringVar(&dst.LogLevel, "log-level", def.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&dst.Headless, "headless", def.Headless, "run without the TUI and print log lines to stdout")
	fs.BoolVarP(&dst.AutoStart, "start", "s", def.AutoStart, "start jiggling immediately with the configured mode")
}

var flagFields = map[string]func(dst *Settings, src Settings){
	"idle":      func(d *Settings, s Settings) { d.IdleCooldown = s.IdleCooldown },
	"interval":  func(d *Settings, s Settings) { d.PollInterval = s.PollInterval },
	"mode":      func(d *Settings, s Settings) { d.Mode = s.Mode },
	"duration":  func(d *Settings, s Settings) { d.Duration = s.Duration },
	"from":      func(d *Settings, s Settings) { d.WindowStart = s.WindowStart },
	"until":     func(d *Settings, s Settings) { d.WindowEnd = s.WindowEnd },
	"log-file":  func(d *Settings, s Settings) { d.LogFile = s.LogFile },
	"log-level": func(d *Settings, s Settings) { d.LogLevel = s.LogLevel },
	"headless":  func(d *Settings, s Settings) { d.Headless = s.Headless },
	"start":     func(d *Settings, s Settings) { d.AutoStart = s.AutoStart },
}

// Resolve merges defaults, the file at path (if any) and the flags the user
// actually set on fs, in that order of precedence, and validates the result.
func Resolve(fs *pflag.FlagSet, flagged Settings, path string) (Settings, error) {
	s := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return s, err
		}
		s = loaded
	}

	if fs != nil {
		fs.Visit(func(f *pflag.Flag) {
			if apply, ok := flagFields[f.Name]; ok {
				apply(&s, flagged)
			}
		})
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks ranges and formats. Duration and window fields are only
// checked when the selected mode uses them.
func (s Settings) Validate() error {
	if _, err := s.RunConfig(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// RunConfig converts the settings into the scheduler's configuration.
func (s Settings) RunConfig() (jiggle.RunConfig, error) {
	var cfg jiggle.RunConfig

	if s.IdleCooldown < MinIdleCooldown || s.IdleCooldown > MaxIdleCooldown {
		return cfg, fmt.Errorf("%w: idle cooldown %d minutes, want %d-%d",
			ErrOutOfRange, s.IdleCooldown, MinIdleCooldown, MaxIdleCooldown)
	}
	if s.PollInterval < MinPollInterval || s.PollInterval > MaxPollInterval {
		return cfg, fmt.Errorf("%w: poll interval %d seconds, want %d-%d",
			ErrOutOfRange, s.PollInterval, MinPollInterval, MaxPollInterval)
	}
	cfg.IdleCooldown = time.Duration(s.IdleCooldown) * time.Minute
	cfg.PollInterval = time.Duration(s.PollInterval) * time.Second

	mode, err := jiggle.ParseRunMode(s.Mode)
	if err != nil {
		return cfg, err
	}
	cfg.Mode = mode

	switch mode {
	case jiggle.ForDuration:
		d, err := ParseRunDuration(s.Duration)
		if err != nil {
			return cfg, err
		}
		cfg.DurationLimit = d
	case jiggle.BetweenHours:
		start, end, err := ParseWindow(s.WindowStart, s.WindowEnd)
		if err != nil {
			return cfg, err
		}
		cfg.WindowStart, cfg.WindowEnd = start, end
	}

	return cfg, cfg.Validate()
}

// ParseRunDuration parses a run length and checks it against [MinDuration, MaxDuration].
func ParseRunDuration(input string) (time.Duration, error) {
	d, err := util.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", jiggle.ErrInvalidDuration, err)
	}
	if d < MinDuration || d > MaxDuration {
		return 0, fmt.Errorf("%w: %w: %v, want %v-%v",
			ErrOutOfRange, jiggle.ErrInvalidDuration, d, MinDuration, MaxDuration)
	}
	return d, nil
}

// ParseWindow parses the start and end of an active window. The start must
// be strictly before the end on the same day.
func ParseWindow(from, until string) (start, end jiggle.TimeOfDay, err error) {
	h, m, err := util.ParseClock(from)
	if err != nil {
		return start, end, fmt.Errorf("%w: start: %w", jiggle.ErrInvalidWindow, err)
	}
	start = jiggle.TimeOfDay{Hour: h, Minute: m}

	h, m, err = util.ParseClock(until)
	if err != nil {
		return start, end, fmt.Errorf("%w: end: %w", jiggle.ErrInvalidWindow, err)
	}
	end = jiggle.TimeOfDay{Hour: h, Minute: m}

	if !start.Before(end) {
		return start, end, fmt.Errorf("%w: %s-%s", jiggle.ErrInvalidWindow, start, end)
	}
	return start, end, nil
}

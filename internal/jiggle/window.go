package jiggle

import (
	"fmt"
	"strings"
	"time"
)

// RunMode bounds how long a run may keep jiggling.
type RunMode int

const (
	NonStop RunMode = iota
	ForDuration
	BetweenHours
)

func (m RunMode) String() string {
	switch m {
	case NonStop:
		return "non-stop"
	case ForDuration:
		return "for duration"
	case BetweenHours:
		return "between hours"
	default:
		return "unknown"
	}
}

// ParseRunMode accepts the mode names used on the command line and in config files.
func ParseRunMode(s string) (RunMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nonstop", "non-stop":
		return NonStop, nil
	case "duration", "for-duration", "for duration":
		return ForDuration, nil
	case "between", "between-hours", "between hours", "hours":
		return BetweenHours, nil
	default:
		return NonStop, fmt.Errorf("unknown mode %q (want nonstop, duration or between)", s)
	}
}

// TimeOfDay is a wall-clock time with minute precision, independent of date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// TimeOfDayOf returns the wall-clock time of day of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is strictly earlier in the day than o.
func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.minutes() < o.minutes()
}

func (t TimeOfDay) valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// RunConfig is the immutable configuration of one run.
type RunConfig struct {
	IdleCooldown  time.Duration
	PollInterval  time.Duration
	Mode          RunMode
	DurationLimit time.Duration
	WindowStart   TimeOfDay
	WindowEnd     TimeOfDay
}

// Validate checks the invariants a run depends on. Windows spanning midnight
// are rejected.
func (c RunConfig) Validate() error {
	if c.IdleCooldown <= 0 || c.PollInterval <= 0 {
		return fmt.Errorf("%w: cooldown=%v poll=%v", ErrInvalidInterval, c.IdleCooldown, c.PollInterval)
	}
	switch c.Mode {
	case NonStop:
	case ForDuration:
		if c.DurationLimit <= 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidDuration, c.DurationLimit)
		}
	case BetweenHours:
		if !c.WindowStart.valid() || !c.WindowEnd.valid() {
			return fmt.Errorf("%w: %s-%s is not a valid time of day", ErrInvalidWindow, c.WindowStart, c.WindowEnd)
		}
		if !c.WindowStart.Before(c.WindowEnd) {
			return fmt.Errorf("%w: %s-%s", ErrInvalidWindow, c.WindowStart, c.WindowEnd)
		}
	default:
		return fmt.Errorf("unknown run mode %d", c.Mode)
	}
	return nil
}

// ShouldContinue reports whether a run started at start may keep jiggling at now.
//
// ForDuration compares now.Sub(start), which uses the monotonic reading when
// both instants come from time.Now. BetweenHours looks only at now's wall-clock
// time of day. Paused time is not excluded from a duration budget.
func ShouldContinue(cfg RunConfig, start, now time.Time) bool {
	switch cfg.Mode {
	case ForDuration:
		return now.Sub(start) < cfg.DurationLimit
	case BetweenHours:
		tod := TimeOfDayOf(now)
		return !tod.Before(cfg.WindowStart) && tod.Before(cfg.WindowEnd)
	default:
		return true
	}
}

// StopReason describes why ShouldContinue returned false for cfg.
func StopReason(cfg RunConfig) string {
	switch cfg.Mode {
	case ForDuration:
		return fmt.Sprintf("Duration of %s reached.", formatDuration(cfg.DurationLimit))
	case BetweenHours:
		return fmt.Sprintf("Outside of active hours %s-%s.", cfg.WindowStart, cfg.WindowEnd)
	default:
		return "Stop condition reached."
	}
}

// Remaining returns the duration budget left at now, or zero outside ForDuration.
func Remaining(cfg RunConfig, start, now time.Time) time.Duration {
	if cfg.Mode != ForDuration {
		return 0
	}
	remaining := cfg.DurationLimit - now.Sub(start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// untilStop returns how long a run started at start may still go on at now.
// The second result is false for NonStop, which has no limit.
func untilStop(cfg RunConfig, start, now time.Time) (time.Duration, bool) {
	switch cfg.Mode {
	case ForDuration:
		return Remaining(cfg, start, now), true
	case BetweenHours:
		end := time.Date(now.Year(), now.Month(), now.Day(), cfg.WindowEnd.Hour, cfg.WindowEnd.Minute, 0, 0, now.Location())
		if left := end.Sub(now); left > 0 {
			return left, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// formatDuration drops the zero units time.Duration.String prints ("3m0s" -> "3m").
func formatDuration(d time.Duration) string {
	switch {
	case d == 0:
		return d.String()
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return strings.TrimSuffix(d.String(), "0s")
	default:
		return d.String()
	}
}

package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/stigoleg/mouse-jiggler/internal/config"
)

const (
	modeDuration = "duration"
	modeBetween  = "between"
)

// formValues backs the settings form. It lives on the heap because the form
// keeps pointers into it across Update calls.
type formValues struct {
	mode     string
	duration string
	from     string
	until    string
	idle     string
	interval string
}

func newFormValues(s config.Settings, mode string) *formValues {
	return &formValues{
		mode:     mode,
		duration: s.Duration,
		from:     s.WindowStart,
		until:    s.WindowEnd,
		idle:     strconv.Itoa(s.IdleCooldown),
		interval: strconv.Itoa(s.PollInterval),
	}
}

// apply returns base updated with the values entered in the form.
func (v *formValues) apply(base config.Settings) (config.Settings, error) {
	s := base
	s.Mode = v.mode
	s.Duration = strings.TrimSpace(v.duration)
	s.WindowStart = strings.TrimSpace(v.from)
	s.WindowEnd = strings.TrimSpace(v.until)

	idle, err := strconv.Atoi(strings.TrimSpace(v.idle))
	if err != nil {
		return base, fmt.Errorf("idle time: %q is not a number of minutes", v.idle)
	}
	interval, err := strconv.Atoi(strings.TrimSpace(v.interval))
	if err != nil {
		return base, fmt.Errorf("move interval: %q is not a number of seconds", v.interval)
	}
	s.IdleCooldown = idle
	s.PollInterval = interval

	if _, err := s.RunConfig(); err != nil {
		return base, err
	}
	return s, nil
}

func validateRange(unit string, lo, hi int) func(string) error {
	return func(in string) error {
		n, err := strconv.Atoi(strings.TrimSpace(in))
		if err != nil {
			return fmt.Errorf("enter a number of %s", unit)
		}
		if n < lo || n > hi {
			return fmt.Errorf("must be %d-%d %s", lo, hi, unit)
		}
		return nil
	}
}

func validateDuration(in string) error {
	_, err := config.ParseRunDuration(strings.TrimSpace(in))
	return err
}

func buildSettingsForm(v *formValues) *huh.Form {
	durationGroup := huh.NewGroup(
		huh.NewInput().
			Title("Duration").
			Description("How long to keep jiggling, 1h to 24h (e.g. 2h30m, or minutes).").
			Key("duration").
			Validate(validateDuration).
			Value(&v.duration),
	).WithHideFunc(func() bool { return v.mode != modeDuration })

	windowGroup := huh.NewGroup(
		huh.NewInput().
			Title("Start time").
			Description("Start of the active window (e.g. 09:00 or 9:00AM).").
			Key("from").
			Value(&v.from),
		huh.NewInput().
			Title("End time").
			Description("End of the active window, after the start on the same day.").
			Key("until").
			Validate(func(string) error {
				_, _, err := config.ParseWindow(v.from, v.until)
				return err
			}).
			Value(&v.until),
	).WithHideFunc(func() bool { return v.mode != modeBetween })

	timingGroup := huh.NewGroup(
		huh.NewInput().
			Title("Idle time (minutes)").
			Description("Pause this long after you move the mouse yourself.").
			Key("idle").
			Validate(validateRange("minutes", config.MinIdleCooldown, config.MaxIdleCooldown)).
			Value(&v.idle),
		huh.NewInput().
			Title("Move interval (seconds)").
			Description("Time between pointer checks.").
			Key("interval").
			Validate(validateRange("seconds", config.MinPollInterval, config.MaxPollInterval)).
			Value(&v.interval),
	)

	return huh.NewForm(durationGroup, windowGroup, timingGroup)
}

// Package pointer reads the pointer position and injects small relative moves.
package pointer

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// ErrInjectionUnavailable is returned when the platform denies synthetic pointer input.
var ErrInjectionUnavailable = errors.New("synthetic pointer input unavailable")

// Point is a pointer position in screen coordinates.
type Point struct {
	X int
	Y int
}

// Probe reads the current pointer position and moves the pointer.
// Both calls are synchronous and expected to return quickly.
type Probe interface {
	Position() (Point, error)
	MoveBy(dx, dy int) error
	Name() string
}

// Constructor builds a probe or explains why it cannot work on this system.
type Constructor func() (Probe, error)

// Detect returns the probe from the first constructor that succeeds. The
// returned error wraps ErrInjectionUnavailable when none works.
func Detect(ctors ...Constructor) (Probe, error) {
	var errs []error
	for _, ctor := range ctors {
		p, err := ctor()
		if err == nil {
			return p, nil
		}
		errs = append(errs, err)
	}
	return nil, fmt.Errorf("%w: %w", ErrInjectionUnavailable, errors.Join(errs...))
}

// Unavailable returns a probe that fails every call with reason.
// The scheduler surfaces the failure on the first cycle of a run.
func Unavailable(reason error) Probe {
	if reason == nil {
		reason = ErrInjectionUnavailable
	}
	if !errors.Is(reason, ErrInjectionUnavailable) {
		reason = fmt.Errorf("%w: %w", ErrInjectionUnavailable, reason)
	}
	return &unavailableProbe{err: reason}
}

type unavailableProbe struct {
	err error
}

func (p *unavailableProbe) Position() (Point, error) { return Point{}, p.err }
func (p *unavailableProbe) MoveBy(dx, dy int) error  { return p.err }
func (p *unavailableProbe) Name() string             { return "unavailable" }

// HasX11Display reports whether an X11 display can be reached. Wayland
// compositors do not allow reading or warping the global pointer.
func HasX11Display() bool {
	if runtime.GOOS != "linux" {
		return true
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" && os.Getenv("DISPLAY") == "" {
		return false
	}
	return os.Getenv("DISPLAY") != ""
}

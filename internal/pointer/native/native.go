//go:build cgo

// Package native drives the pointer through the robotgo bindings. It needs cgo
// and, on Linux, the X11/XTest development headers.
package native

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

// New returns a robotgo-backed probe when a screen is reachable.
func New() (pointer.Probe, error) {
	if !pointer.HasX11Display() {
		return nil, fmt.Errorf("robotgo: no X11 display")
	}
	w, h := robotgo.GetScreenSize()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("robotgo: no screen detected (%dx%d)", w, h)
	}
	return &probe{b: backend{
		location:     func() (int, int) { return robotgo.Location() },
		moveRelative: func(dx, dy int) { robotgo.MoveRelative(dx, dy) },
		screenSize:   func() (int, int) { return robotgo.GetScreenSize() },
	}}, nil
}

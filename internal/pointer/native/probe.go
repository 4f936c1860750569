package native

import (
	"fmt"

	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

// backend is the slice of robotgo the probe uses.
type backend struct {
	location     func() (int, int)
	moveRelative func(dx, dy int)
	screenSize   func() (int, int)
}

type probe struct {
	b backend
}

func (p *probe) Position() (pointer.Point, error) {
	x, y := p.b.location()
	return pointer.Point{X: x, Y: y}, nil
}

// MoveBy moves the pointer and reads it back. robotgo reports nothing when
// the OS drops synthetic input (macOS without Accessibility permission), so
// a pointer that stays put although it had room to move counts as denied.
func (p *probe) MoveBy(dx, dy int) error {
	x, y := p.b.location()
	w, h := p.b.screenSize()

	p.b.moveRelative(dx, dy)

	// Outside the main screen the bounds are unknown; skip the check.
	if x < 0 || y < 0 || x >= w || y >= h {
		return nil
	}
	tx, ty := clamp(x+dx, w), clamp(y+dy, h)
	if tx == x && ty == y {
		return nil
	}
	if nx, ny := p.b.location(); nx == x && ny == y {
		return fmt.Errorf("%w: robotgo move had no effect", pointer.ErrInjectionUnavailable)
	}
	return nil
}

func (p *probe) Name() string {
	return "robotgo"
}

func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v > size-1 {
		return size - 1
	}
	return v
}

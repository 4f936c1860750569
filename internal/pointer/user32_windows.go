//go:build windows

package pointer

import (
	"fmt"
	"syscall"
	"unsafe"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procSetCursorPos = user32.NewProc("SetCursorPos")
)

// user32Probe moves the cursor through the Win32 API and needs no cgo.
type user32Probe struct{}

// NewUser32 returns a probe backed by user32.dll.
func NewUser32() (Probe, error) {
	if err := procGetCursorPos.Find(); err != nil {
		return nil, fmt.Errorf("user32: %w", err)
	}
	if err := procSetCursorPos.Find(); err != nil {
		return nil, fmt.Errorf("user32: %w", err)
	}
	return &user32Probe{}, nil
}

// winPoint matches the Win32 POINT struct.
type winPoint struct {
	X, Y int32
}

func (p *user32Probe) Position() (Point, error) {
	var pt winPoint
	r1, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r1 == 0 {
		return Point{}, fmt.Errorf("%w: GetCursorPos: %v", ErrInjectionUnavailable, err)
	}
	return Point{X: int(pt.X), Y: int(pt.Y)}, nil
}

func (p *user32Probe) MoveBy(dx, dy int) error {
	cur, err := p.Position()
	if err != nil {
		return err
	}
	r1, _, callErr := procSetCursorPos.Call(uintptr(cur.X+dx), uintptr(cur.Y+dy))
	if r1 == 0 {
		return fmt.Errorf("%w: SetCursorPos: %v", ErrInjectionUnavailable, callErr)
	}
	return nil
}

func (p *user32Probe) Name() string {
	return "user32"
}

//go:build !windows

package pointer

import (
	"fmt"
	"runtime"
)

// NewUser32 is only available on Windows.
func NewUser32() (Probe, error) {
	return nil, fmt.Errorf("user32: not supported on %s", runtime.GOOS)
}

//go:build !cgo

package native

import (
	"errors"

	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

// New always fails: robotgo needs cgo.
func New() (pointer.Probe, error) {
	return nil, errors.New("robotgo: binary built without cgo")
}

package jiggle

import (
	"errors"

	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

var (
	ErrAlreadyRunning  = errors.New("jiggler already running")
	ErrInvalidWindow   = errors.New("window start must be before window end")
	ErrInvalidDuration = errors.New("duration limit must be positive")
	ErrInvalidInterval = errors.New("idle cooldown and poll interval must be positive")
)

// ErrInjectionUnavailable ends a run when the platform refuses synthetic pointer input.
var ErrInjectionUnavailable = pointer.ErrInjectionUnavailable

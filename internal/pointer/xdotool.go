package pointer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/stigoleg/mouse-jiggler/internal/util"
)

const commandTimeout = 2 * time.Second

// xdotoolProbe shells out to xdotool. It is the fallback on X11 when the
// binary was built without cgo.
type xdotoolProbe struct {
	cmd string
}

// NewXdotool returns a probe backed by the xdotool command on Linux/X11.
func NewXdotool() (Probe, error) {
	if runtime.GOOS != "linux" {
		return nil, fmt.Errorf("xdotool: not supported on %s", runtime.GOOS)
	}
	path, ok := util.CommandPath("xdotool")
	if !ok {
		return nil, errors.New("xdotool: not found in PATH")
	}
	if !HasX11Display() {
		return nil, errors.New("xdotool: only works on X11, not Wayland")
	}
	return &xdotoolProbe{cmd: path}, nil
}

func (p *xdotoolProbe) Position() (Point, error) {
	out, err := runVerbose(p.cmd, "getmouselocation", "--shell")
	if err != nil {
		return Point{}, fmt.Errorf("xdotool getmouselocation: %w (output: %q)", err, out)
	}
	return parseShellLocation(out)
}

func (p *xdotoolProbe) MoveBy(dx, dy int) error {
	out, err := runVerbose(p.cmd, "mousemove_relative", "--", strconv.Itoa(dx), strconv.Itoa(dy))
	if err != nil {
		return fmt.Errorf("%w: xdotool mousemove_relative: %v (output: %q)", ErrInjectionUnavailable, err, out)
	}
	return nil
}

func (p *xdotoolProbe) Name() string {
	return "xdotool"
}

// parseShellLocation parses the KEY=VALUE lines printed by
// "xdotool getmouselocation --shell".
func parseShellLocation(out string) (Point, error) {
	var pt Point
	var haveX, haveY bool
	for _, line := range strings.Split(out, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), "=")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			pt.X, haveX = n, true
		case "Y":
			pt.Y, haveY = n, true
		}
	}
	if !haveX || !haveY {
		return Point{}, fmt.Errorf("unexpected xdotool output %q", out)
	}
	return pt, nil
}

// runVerbose executes a command and returns the combined output (stdout+stderr) and any error.
// A hung X server cannot stall the caller for longer than commandTimeout.
func runVerbose(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}

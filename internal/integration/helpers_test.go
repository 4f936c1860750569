package integration

import (
	"bytes"
	"strings"
	"sync"

	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

// desk simulates a pointer that a user may grab at any moment.
type desk struct {
	mu     sync.Mutex
	pos    pointer.Point
	nudges int
	held   bool
}

// Position drifts by one pixel per read while the user holds the mouse.
func (d *desk) Position() (pointer.Point, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held {
		d.pos.X++
	}
	return d.pos, nil
}

func (d *desk) MoveBy(dx, dy int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nudges++
	d.pos.X += dx
	d.pos.Y += dy
	return nil
}

func (d *desk) Name() string { return "desk" }

func (d *desk) grab() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = true
}

func (d *desk) release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.held = false
}

func (d *desk) Nudges() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.nudges
}

// journal records sink events as text.
type journal struct {
	mu    sync.Mutex
	lines []string
}

func (j *journal) StatusChanged(s jiggle.RunState) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, "status "+s.String())
}

func (j *journal) LogLine(l jiggle.LogLine) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lines = append(j.lines, l.Text)
}

func (j *journal) Lines() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.lines...)
}

func (j *journal) Count(substr string) int {
	n := 0
	for _, l := range j.Lines() {
		if strings.Contains(l, substr) {
			n++
		}
	}
	return n
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

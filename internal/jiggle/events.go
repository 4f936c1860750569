package jiggle

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RunState is the externally visible state of the scheduler.
type RunState int

const (
	Stopped RunState = iota
	Running
	Paused
)

func (s RunState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// LogLine is one entry for the activity log shown to the user.
type LogLine struct {
	RunID string
	Time  time.Time
	Level logrus.Level
	Text  string
}

func (l LogLine) String() string {
	return fmt.Sprintf("[%s] %s", l.Time.Format("15:04:05"), l.Text)
}

// Sink receives status changes and log lines in the order they occur.
// Calls come from a single dispatcher goroutine, never from the run loop,
// so a slow Sink cannot stall jiggling.
type Sink interface {
	StatusChanged(state RunState)
	LogLine(line LogLine)
}

// SinkFuncs adapts plain functions to a Sink. Nil fields are ignored.
type SinkFuncs struct {
	OnStatus func(RunState)
	OnLog    func(LogLine)
}

func (f SinkFuncs) StatusChanged(state RunState) {
	if f.OnStatus != nil {
		f.OnStatus(state)
	}
}

func (f SinkFuncs) LogLine(line LogLine) {
	if f.OnLog != nil {
		f.OnLog(line)
	}
}

// dispatcher is an unbounded FIFO between the scheduler and its Sink.
// push never blocks.
type dispatcher struct {
	sink Sink

	mu     sync.Mutex
	queue  []func(Sink)
	closed bool

	wake chan struct{}
	done chan struct{}
}

func newDispatcher(sink Sink) *dispatcher {
	if sink == nil {
		sink = SinkFuncs{}
	}
	d := &dispatcher{
		sink: sink,
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *dispatcher) push(ev func(Sink)) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.queue = append(d.queue, ev)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *dispatcher) status(state RunState) {
	d.push(func(s Sink) { s.StatusChanged(state) })
}

func (d *dispatcher) log(line LogLine) {
	d.push(func(s Sink) { s.LogLine(line) })
}

func (d *dispatcher) run() {
	defer close(d.done)
	for {
		d.mu.Lock()
		batch := d.queue
		d.queue = nil
		closed := d.closed
		d.mu.Unlock()

		for _, ev := range batch {
			ev(d.sink)
		}

		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-d.wake
	}
}

// close delivers everything already queued, then stops the dispatcher.
// It returns false if draining did not finish within timeout.
func (d *dispatcher) close(timeout time.Duration) bool {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}

	select {
	case <-d.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

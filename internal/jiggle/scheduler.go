// Package jiggle runs the loop that keeps a workstation from going idle by
// nudging the pointer, pausing while the user is active.
package jiggle

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stigoleg/mouse-jiggler/internal/pointer"
	"github.com/stigoleg/mouse-jiggler/internal/pointer/jitter"
)

const (
	defaultStopTimeout  = 5 * time.Second
	defaultDrainTimeout = 2 * time.Second
)

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger mirrors every log line to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces time.Now. Used for start instants, duration checks,
// window checks and log timestamps; sleeps always use real timers.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithJitter replaces the offset generator.
func WithJitter(g *jitter.Generator) Option {
	return func(s *Scheduler) {
		if g != nil {
			s.jitter = g
		}
	}
}

// Scheduler owns at most one jiggle run at a time.
type Scheduler struct {
	probe  pointer.Probe
	events *dispatcher
	log    logrus.FieldLogger
	now    func() time.Time
	jitter *jitter.Generator

	mu     sync.Mutex
	state  RunState
	cur    *run
	cancel context.CancelFunc
	err    error
}

// run holds the per-run data owned by one loop goroutine.
type run struct {
	id      string
	cfg     RunConfig
	started time.Time
	done    chan struct{}

	moves  int
	pauses int
}

// New creates a stopped scheduler that moves the pointer through probe and
// reports to sink.
func New(probe pointer.Probe, sink Sink, opts ...Option) *Scheduler {
	s := &Scheduler{
		probe:  probe,
		events: newDispatcher(sink),
		log:    logrus.StandardLogger(),
		now:    time.Now,
		jitter: jitter.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "scheduler")
	return s
}

// State returns the current run state.
func (s *Scheduler) State() RunState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsRunning reports whether a run is active, paused or not.
func (s *Scheduler) IsRunning() bool {
	return s.State() != Stopped
}

// Err returns the fault that ended the last run, or nil if it ended normally.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Config returns the configuration of the active or most recent run.
func (s *Scheduler) Config() RunConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return RunConfig{}
	}
	return s.cur.cfg
}

// TimeRemaining returns the duration budget left for an active ForDuration run.
func (s *Scheduler) TimeRemaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Stopped || s.cur == nil {
		return 0
	}
	return Remaining(s.cur.cfg, s.cur.started, s.now())
}

// Start validates cfg and launches the run loop in the background.
func (s *Scheduler) Start(cfg RunConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Stopped {
		return ErrAlreadyRunning
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &run{
		id:      uuid.NewString(),
		cfg:     cfg,
		started: s.now(),
		done:    make(chan struct{}),
	}
	s.cur = r
	s.cancel = cancel
	s.err = nil

	s.logf(r, logrus.InfoLevel, "Idle time set to %s.", formatDuration(cfg.IdleCooldown))
	s.logf(r, logrus.InfoLevel, "Move interval set to %s.", formatDuration(cfg.PollInterval))
	s.setStateLocked(Running)
	s.logf(r, logrus.InfoLevel, "Mouse jiggler started (%s).", describeMode(cfg))

	go s.loop(ctx, r)
	return nil
}

// Stop cancels the active run and waits for the loop to exit. Calling it
// while stopped is a no-op.
func (s *Scheduler) Stop() error {
	return s.StopWithTimeout(0)
}

// StopWithTimeout is Stop with a bound on how long to wait for the loop.
func (s *Scheduler) StopWithTimeout(timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultStopTimeout
	}

	s.mu.Lock()
	cancel := s.cancel
	var done chan struct{}
	if s.cur != nil {
		done = s.cur.done
	}
	s.mu.Unlock()

	if cancel == nil || done == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		s.log.Warnf("scheduler: stop timeout exceeded after %v", timeout)
		return fmt.Errorf("scheduler: loop did not stop within %v", timeout)
	}
}

// Close stops any active run and flushes pending events to the sink.
// The scheduler must not be started again afterwards.
func (s *Scheduler) Close() error {
	err := s.Stop()
	if !s.events.close(defaultDrainTimeout) {
		s.log.Warn("scheduler: event sink did not drain before close")
	}
	return err
}

func (s *Scheduler) loop(ctx context.Context, r *run) {
	var fault error
	reason := "Mouse jiggler stopped."
	defer func() { s.finish(r, reason, fault) }()

	for {
		if ctx.Err() != nil {
			return
		}
		if !ShouldContinue(r.cfg, r.started, s.now()) {
			reason = StopReason(r.cfg) + " Mouse jiggler stopped."
			return
		}

		before, err := s.probe.Position()
		if err != nil {
			fault = fmt.Errorf("read pointer position: %w", err)
			s.logf(r, logrus.ErrorLevel, "Reading pointer position failed: %v", err)
			return
		}

		if !sleep(ctx, r.cfg.PollInterval) {
			return
		}

		after, err := s.probe.Position()
		if err != nil {
			fault = fmt.Errorf("read pointer position: %w", err)
			s.logf(r, logrus.ErrorLevel, "Reading pointer position failed: %v", err)
			return
		}

		if before != after {
			if !s.cooldown(ctx, r) {
				return
			}
			continue
		}

		dx, dy := s.jitter.Offset()
		if err := s.probe.MoveBy(dx, dy); err != nil {
			fault = fmt.Errorf("move pointer: %w", err)
			s.logf(r, logrus.ErrorLevel, "Moving the pointer failed: %v", err)
			return
		}
		r.moves++
		s.logf(r, logrus.InfoLevel, "Mouse moved slightly at %s.", s.now().Format("15:04:05"))
	}
}

// cooldown pauses after real user movement. The pause never outlasts the
// run's own limit. It returns false if the run was cancelled while waiting.
func (s *Scheduler) cooldown(ctx context.Context, r *run) bool {
	wait := r.cfg.IdleCooldown
	if left, limited := untilStop(r.cfg, r.started, s.now()); limited && left < wait {
		wait = left
	}

	r.pauses++
	s.setState(Paused)
	s.logf(r, logrus.WarnLevel, "Mouse movement detected. Pausing for %s.", formatDuration(r.cfg.IdleCooldown))

	if !sleep(ctx, wait) {
		return false
	}
	if !ShouldContinue(r.cfg, r.started, s.now()) {
		return true
	}

	s.setState(Running)
	s.logf(r, logrus.InfoLevel, "Idle time over, resuming mouse jiggling.")
	return true
}

func (s *Scheduler) finish(r *run, reason string, fault error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.err = fault
	s.setStateLocked(Stopped)
	s.logf(r, logrus.InfoLevel, "%s (%d moves, %d pauses)", reason, r.moves, r.pauses)
	close(r.done)
}

func (s *Scheduler) setState(state RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStateLocked(state)
}

// setStateLocked queues the status event under s.mu so that a following
// Start cannot overtake it.
func (s *Scheduler) setStateLocked(state RunState) {
	if s.state == state {
		return
	}
	s.state = state
	s.events.status(state)
}

func (s *Scheduler) logf(r *run, level logrus.Level, format string, args ...any) {
	line := LogLine{
		RunID: r.id,
		Time:  s.now(),
		Level: level,
		Text:  fmt.Sprintf(format, args...),
	}
	s.events.log(line)

	entry := s.log.WithField("run_id", r.id)
	switch level {
	case logrus.ErrorLevel:
		entry.Error(line.Text)
	case logrus.WarnLevel:
		entry.Warn(line.Text)
	default:
		entry.Info(line.Text)
	}
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func describeMode(cfg RunConfig) string {
	switch cfg.Mode {
	case ForDuration:
		return "for " + formatDuration(cfg.DurationLimit)
	case BetweenHours:
		return fmt.Sprintf("between %s and %s", cfg.WindowStart, cfg.WindowEnd)
	default:
		return "non-stop"
	}
}

package integration

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/mouse-jiggler/internal/config"
	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// TestSettingsToScheduler runs a config-built run against a simulated desk:
// jiggle, user grabs the mouse, pause, resume, stop.
func TestSettingsToScheduler(t *testing.T) {
	s := config.Default()
	s.Mode = "duration"
	s.Duration = "2h"
	cfg, err := s.RunConfig()
	require.NoError(t, err)

	// Millisecond timings keep the test fast; the config layer only allows whole units.
	cfg.PollInterval = 2 * time.Millisecond
	cfg.IdleCooldown = 100 * time.Millisecond

	d := &desk{}
	j := &journal{}
	sched := jiggle.New(d, j, jiggle.WithLogger(quietLogger()))

	cleanup := jiggle.NewCleanupManager(time.Second, quietLogger())
	cleanup.RegisterFunc("scheduler", sched.Close)

	require.NoError(t, sched.Start(cfg))
	assert.InDelta(t, float64(2*time.Hour), float64(sched.TimeRemaining()), float64(time.Second))

	require.Eventually(t, func() bool { return d.Nudges() >= 3 }, 2*time.Second, time.Millisecond)

	d.grab()
	require.Eventually(t, func() bool { return sched.State() == jiggle.Paused }, 2*time.Second, time.Millisecond)
	d.release()
	before := d.Nudges()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, before, d.Nudges(), "no jiggling while paused")

	require.Eventually(t, func() bool { return j.Count("Idle time over") == 1 }, 2*time.Second, time.Millisecond)
	require.Eventually(t, func() bool { return d.Nudges() > before }, 2*time.Second, time.Millisecond)

	assert.Empty(t, cleanup.Execute())
	assert.Equal(t, jiggle.Stopped, sched.State())
	assert.NoError(t, sched.Err())

	lines := j.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, "Idle time set to 100ms.", lines[0])
	assert.Contains(t, lines[len(lines)-1], "1 pauses")
	assert.Equal(t, 1, j.Count("status Paused"))
	assert.Equal(t, 1, j.Count("status Stopped"))
}

// TestRapidRestart checks that start/stop cycles never leave a loop behind.
func TestRapidRestart(t *testing.T) {
	d := &desk{}
	j := &journal{}
	sched := jiggle.New(d, j, jiggle.WithLogger(quietLogger()))
	defer sched.Close()

	cfg := jiggle.RunConfig{IdleCooldown: time.Second, PollInterval: time.Millisecond, Mode: jiggle.NonStop}
	for i := 0; i < 50; i++ {
		require.NoError(t, sched.Start(cfg))
		require.NoError(t, sched.StopWithTimeout(time.Second))
		require.Equal(t, jiggle.Stopped, sched.State())
	}

	require.NoError(t, sched.Close())
	assert.Equal(t, 50, j.Count("status Running"))
	assert.Equal(t, 50, j.Count("status Stopped"))

	n := d.Nudges()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, d.Nudges(), "no loop may survive Stop")
}

// TestConcurrentStop stops one run from many goroutines at once.
func TestConcurrentStop(t *testing.T) {
	sched := jiggle.New(&desk{}, nil, jiggle.WithLogger(quietLogger()))
	defer sched.Close()

	require.NoError(t, sched.Start(jiggle.RunConfig{IdleCooldown: time.Second, PollInterval: time.Millisecond, Mode: jiggle.NonStop}))

	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() { errs <- sched.Stop() }()
	}
	for i := 0; i < 10; i++ {
		assert.NoError(t, <-errs)
	}
	assert.Equal(t, jiggle.Stopped, sched.State())
}

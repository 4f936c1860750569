package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/mouse-jiggler/internal/config"
	"github.com/stigoleg/mouse-jiggler/internal/jiggle"
	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

// stillProbe reports a pointer that only moves when told to.
type stillProbe struct {
	mu  sync.Mutex
	pos pointer.Point
}

func (p *stillProbe) Position() (pointer.Point, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pos, nil
}

func (p *stillProbe) MoveBy(dx, dy int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pos.X += dx
	p.pos.Y += dy
	return nil
}

func (p *stillProbe) Name() string { return "still" }

func stillFactory() (pointer.Probe, error) { return &stillProbe{}, nil }

// syncBuffer is a bytes.Buffer safe for the dispatcher goroutine.
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

func execute(t *testing.T, ctx context.Context, factory ProbeFactory, args ...string) (string, error) {
	t.Helper()
	out := &syncBuffer{}
	cmd := NewRootCommandWithProbe("1.2.3", factory)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	for _, arg := range []string{"--version", "-v"} {
		out, err := execute(t, context.Background(), stillFactory, arg)
		require.NoError(t, err)
		assert.Equal(t, "Mouse Jiggler version 1.2.3\n", out)
	}
}

func TestHelpListsFlags(t *testing.T) {
	out, err := execute(t, context.Background(), stillFactory, "--help")
	require.NoError(t, err)
	for _, flag := range []string{"--idle", "--interval", "--mode", "--duration", "--from", "--until", "--headless", "--start", "--config", "--log-level"} {
		assert.Contains(t, out, flag)
	}
}

func TestInvalidSettingsFailBeforeRunning(t *testing.T) {
	called := false
	factory := func() (pointer.Probe, error) {
		called = true
		return &stillProbe{}, nil
	}

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "cooldown out of range", args: []string{"--idle", "0"}, wantErr: config.ErrOutOfRange},
		{name: "reversed window", args: []string{"-m", "between", "--from", "18:00", "--until", "09:00"}, wantErr: jiggle.ErrInvalidWindow},
		{name: "short duration", args: []string{"-m", "duration", "-d", "10m"}, wantErr: jiggle.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, context.Background(), factory, append(tt.args, "--headless")...)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.False(t, called, "no probe should be created for invalid settings")
}

func TestRejectsArguments(t *testing.T) {
	_, err := execute(t, context.Background(), stillFactory, "now")
	assert.Error(t, err)
}

func TestHeadlessRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	out, err := execute(t, ctx, stillFactory, "--headless", "--idle", "5", "--interval", "1", "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Idle time set to 5m.")
	assert.Contains(t, out, "Move interval set to 1s.")
	assert.Contains(t, out, "Mouse jiggler started (non-stop).")
	assert.Contains(t, out, "Mouse jiggler stopped.")
}

func TestHeadlessRunWithoutProbe(t *testing.T) {
	factory := func() (pointer.Probe, error) {
		return nil, errors.New("no display")
	}

	out, err := execute(t, context.Background(), factory, "--headless", "--log-level", "error")
	assert.ErrorIs(t, err, pointer.ErrInjectionUnavailable)
	assert.Contains(t, out, "Reading pointer position failed")
}

func TestHeadlessUsesConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.yaml")
	require.NoError(t, os.WriteFile(path, []byte("idle_cooldown_minutes: 7\nheadless: true\nlog_level: error\n"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	out, err := execute(t, ctx, stillFactory, "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Idle time set to 7m.")
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, context.Background(), stillFactory, "-c", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFormatError(t *testing.T) {
	plain := FormatError(errors.New("boom"))
	assert.Contains(t, plain, "Error: boom")

	boxed := FormatError(errors.New("invalid duration format: x\n\nValid formats:\n• minutes: 90"))
	assert.Contains(t, boxed, "invalid duration format: x")
	assert.Contains(t, boxed, "Valid formats:")
	assert.True(t, strings.Contains(boxed, "╭"), "expected a rounded border")
}

func TestNewLoggerLevels(t *testing.T) {
	s := config.Default()
	s.Headless = true
	s.LogLevel = "debug"

	log, closeLog, err := newLogger(s)
	require.NoError(t, err)
	assert.Equal(t, "debug", log.GetLevel().String())
	assert.NoError(t, closeLog())

	s.LogLevel = "chatty"
	_, _, err = newLogger(s)
	assert.Error(t, err)
}

func TestNewLoggerWritesFileInTUIMode(t *testing.T) {
	s := config.Default()
	s.LogFile = filepath.Join(t.TempDir(), "jiggler.log")

	log, closeLog, err := newLogger(s)
	require.NoError(t, err)
	log.WithField("component", "test").Info("hello")
	require.NoError(t, closeLog())

	data, err := os.ReadFile(s.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "component=test")
}

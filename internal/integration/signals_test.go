package integration

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/mouse-jiggler/internal/cli"
	"github.com/stigoleg/mouse-jiggler/internal/pointer"
)

const helperEnv = "TEST_JIGGLER_HELPER"

// TestCleanupOnSignals runs the headless command in a child process and
// checks that every shutdown signal ends the run cleanly.
func TestCleanupOnSignals(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping signal test in short mode")
	}
	signals := shutdownSignals()
	if len(signals) == 0 {
		t.Skip("signals cannot be sent to other processes on this platform")
	}

	for name, sig := range signals {
		t.Run(name, func(t *testing.T) {
			out := &syncBuffer{}
			cmd := exec.Command(os.Args[0], "-test.run=TestJigglerHelper")
			cmd.Env = append(os.Environ(), helperEnv+"=1")
			cmd.Stdout = out
			cmd.Stderr = out
			require.NoError(t, cmd.Start(), "helper process should start")

			require.Eventually(t, func() bool {
				return strings.Contains(out.String(), "Mouse jiggler started")
			}, 10*time.Second, 10*time.Millisecond, "helper never started: %s", out)

			require.NoError(t, cmd.Process.Signal(sig))

			done := make(chan error, 1)
			go func() { done <- cmd.Wait() }()

			select {
			case err := <-done:
				assert.NoError(t, err, "process should exit cleanly after %s: %s", name, out)
			case <-time.After(5 * time.Second):
				_ = cmd.Process.Kill()
				t.Fatalf("process did not exit within timeout after %s", name)
			}
			assert.Contains(t, out.String(), "Mouse jiggler stopped.")
		})
	}
}

// TestJigglerHelper is the child process for TestCleanupOnSignals.
func TestJigglerHelper(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}

	probe := func() (pointer.Probe, error) { return &desk{}, nil }
	root := cli.NewRootCommandWithProbe("test", probe)
	root.SetArgs([]string{"--headless", "--interval", "1", "--log-level", "error"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
	os.Exit(0)
}

//go:build !windows

package integration

import (
	"os"
	"syscall"
)

func shutdownSignals() map[string]os.Signal {
	return map[string]os.Signal{
		"SIGINT":  syscall.SIGINT,
		"SIGTERM": syscall.SIGTERM,
		"SIGQUIT": syscall.SIGQUIT,
		"SIGTSTP": syscall.SIGTSTP,
	}
}

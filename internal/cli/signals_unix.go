//go:build !windows

package cli

import (
	"os"
	"syscall"
)

// SIGTSTP stops the run like the other signals.
func shutdownSignals() []os.Signal {
	return []os.Signal{
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGTSTP,
	}
}

func isSuspend(sig os.Signal) bool {
	return sig == syscall.SIGTSTP
}

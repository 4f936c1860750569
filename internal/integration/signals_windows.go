//go:build windows

package integration

import "os"

// Windows cannot deliver signals to another process.
func shutdownSignals() map[string]os.Signal {
	return nil
}

package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
)

// watchSignals returns a context cancelled on the first shutdown signal.
func watchSignals(parent context.Context, log logrus.FieldLogger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, shutdownSignals()...)

	go func() {
		select {
		case sig := <-sigChan:
			if isSuspend(sig) {
				log.Info("cli: suspend requested, stopping instead")
			} else {
				log.Infof("cli: received signal %v", sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

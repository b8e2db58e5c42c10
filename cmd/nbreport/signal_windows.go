//go:build windows

package main

import (
	"context"
	"os"
	"os/signal"
)

// shutdownSignals cancel the run context. SIGTERM does not exist on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}

// notifyContext returns a context that is canceled when an interrupt
// signal is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

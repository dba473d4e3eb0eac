package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// WaitForShutdown blocks until SIGINT or SIGTERM arrives or ctx is done. It returns
// the received signal, or nil when ctx ended the wait.
func WaitForShutdown(ctx context.Context) os.Signal {
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sc)

	select {
	case sig := <-sc:
		slog.Info("Shutdown signal received", "signal", sig.String())
		return sig
	case <-ctx.Done():
		slog.Info("Shutdown requested", "reason", context.Cause(ctx))
		return nil
	}
}

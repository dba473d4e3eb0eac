package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"slash-command-bot/internal/config"
)

func main() {
	os.Exit(run())
}

// run returns the process exit status. Shutdown is deferred inside run so it
// completes before os.Exit.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	InitLogger(cfg)

	ctx := context.Background()

	app, err := NewApp(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	return serve(ctx, app, WaitForShutdown)
}

type lifecycle interface {
	Run(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// serve runs app until wait returns and shuts it down afterwards, also when Run fails.
func serve(ctx context.Context, app lifecycle, wait func(context.Context) os.Signal) (status int) {
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("Application shutdown error", "error", err)
			if status == 0 {
				status = 1
			}
		}
	}()

	if err := app.Run(ctx); err != nil {
		slog.Error("Failed to start application", "error", err)
		return 1
	}

	wait(ctx)
	return 0
}

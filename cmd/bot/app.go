package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"slash-command-bot/internal/adapters/discord"
	"slash-command-bot/internal/adapters/discord/commands"
	"slash-command-bot/internal/adapters/discord/slash"
	"slash-command-bot/internal/adapters/storage/postgres"
	"slash-command-bot/internal/config"
	"slash-command-bot/internal/core/ports"
	"slash-command-bot/internal/core/services"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"
)

const registrationTimeout = 30 * time.Second

type App struct {
	config        *config.Config
	store         ports.Repository
	discord       *discordgo.Session
	manager       commands.CommandManager
	dispatcher    *slash.Dispatcher
	metricsServer *http.Server

	mu                 sync.Mutex
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{config: cfg}

	if cfg.DatabaseURL != "" {
		store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("Failed to connect to storage", "error", err)
			return nil, err
		}
		app.store = store
	} else {
		slog.Info("DATABASE_URL is not set, greeting commands are disabled")
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		app.closeStore()
		return nil, err
	}
	session.AddHandler(commands.ReadyHandler)
	app.discord = session

	return app, nil
}

// Run opens the gateway, binds the handlers and registers the command definitions.
func (a *App) Run(ctx context.Context) error {
	if err := a.discord.Open(); err != nil {
		slog.Error("Failed to open discord session", "error", err)
		return err
	}

	manager, err := slash.NewManager(a.discord, a.discord.State.User.ID)
	if err != nil {
		return fmt.Errorf("create command manager: %w", err)
	}
	a.manager = manager

	dispatcher, err := slash.NewDispatcher(a.discord, a.config.DispatchBuffer)
	if err != nil {
		return fmt.Errorf("create dispatcher: %w", err)
	}
	a.dispatcher = dispatcher

	handler := &commands.BotHandler{
		Manager:        a.manager,
		Responder:      a.dispatcher,
		Listener:       a.dispatcher,
		OnUnregistered: a.forgetCommand,
		Scope:          a.config.DiscordGuildID,
	}
	if a.store != nil {
		handler.Settings = services.NewSettingsService(a.store)
	}
	if err := handler.Bind(); err != nil {
		return err
	}

	registered := a.registerCommands(ctx)

	if err := a.startMetricsServer(); err != nil {
		return err
	}

	slog.Info("Slash command bot is online!", "commands", registered, "guild", a.config.DiscordGuildID)
	return nil
}

// registerCommands posts the command definitions and returns how many were created.
func (a *App) registerCommands(ctx context.Context) int {
	ctx, cancel := context.WithTimeout(ctx, registrationTimeout)
	defer cancel()

	defs := commands.GetApplicationCommands(a.store != nil)
	registered := commands.RegisterCommands(ctx, a.manager, defs, a.config.DiscordGuildID)

	a.mu.Lock()
	a.registeredCommands = registered
	a.mu.Unlock()

	count := 0
	for _, cmd := range registered {
		if cmd != nil {
			count++
		}
	}
	return count
}

// forgetCommand drops a command deleted at runtime so Shutdown does not delete it again.
func (a *App) forgetCommand(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, cmd := range a.registeredCommands {
		if cmd != nil && cmd.Name == name {
			a.registeredCommands[i] = nil
		}
	}
}

func (a *App) startMetricsServer() error {
	listener, err := net.Listen("tcp", a.config.MetricsAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.config.MetricsAddr, err)
	}
	if a.config.MetricsMaxConns > 0 {
		listener = netutil.LimitListener(listener, a.config.MetricsMaxConns)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              listener.Addr().String(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting metrics server", "addr", a.metricsServer.Addr)
		if err := a.metricsServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()

	return nil
}

// Shutdown removes the registered commands and releases every resource. It is safe to
// call on a partially initialised App.
func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	// Stop dispatching first so no handler changes the registered list during cleanup.
	if a.dispatcher != nil {
		a.dispatcher.Close()
	}

	if a.manager != nil {
		a.mu.Lock()
		registered := a.registeredCommands
		a.registeredCommands = nil
		a.mu.Unlock()

		commands.CleanupCommands(ctx, a.manager, registered, a.config.DiscordGuildID)
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if a.discord != nil {
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("discord close: %w", err))
		}
	}

	a.closeStore()

	return errors.Join(errs...)
}

func (a *App) closeStore() {
	if a.store != nil {
		a.store.Close()
	}
}

package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"slash-command-bot/internal/adapters/discord/formatting"
	"slash-command-bot/internal/adapters/discord/slash"
	"slash-command-bot/internal/core/services"

	"github.com/bwmarrin/discordgo"
)

type BotHandler struct {
	Manager   CommandManager
	Responder Responder
	Listener  Listener
	// OnUnregistered, if set, is called with the name of every command removed
	// through /unregister.
	OnUnregistered func(name string)
	// Settings is nil when no database is configured.
	Settings *services.SettingsService
	// Scope is the guild the bot's commands are registered in, empty for global.
	Scope string
}

type route struct {
	name    string
	handler slash.HandlerFunc
}

func (h *BotHandler) routes() []route {
	admin := WithAdmin(h.Responder)

	routes := []route{
		{"ping", h.Ping},
		{"commands", h.ListCommands},
		{"unregister", admin(h.Unregister)},
		{"lock", admin(h.Lock)},
	}
	if h.Settings != nil {
		routes = append(routes,
			route{"greet", h.Greet},
			route{"set-greeting", admin(h.SetGreeting)},
			route{"reset-greeting", admin(h.ResetGreeting)},
		)
	}
	return routes
}

// Bind registers every handler with h.Listener.
func (h *BotHandler) Bind() error {
	for _, r := range h.routes() {
		if err := h.Listener.ListenForCommand(r.handler, r.name); err != nil {
			return fmt.Errorf("bind %s: %w", r.name, err)
		}
	}
	return nil
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Bot is online!", "user", ready.User.Username, "guilds", len(ready.Guilds))
}

func (h *BotHandler) Ping(i *discordgo.InteractionCreate) {
	respond(h.Responder, i, formatting.MsgPong, false)
}

func (h *BotHandler) ListCommands(i *discordgo.InteractionCreate) {
	ctx, cancel := requestContext()
	defer cancel()

	cmds, err := h.Manager.GetCommands(ctx, h.Scope)
	if err != nil {
		slog.Error("Failed to list commands", "guild", h.Scope, "error", err)
		respond(h.Responder, i, formatting.MsgListError, true)
		return
	}

	if len(cmds) == 0 {
		respond(h.Responder, i, formatting.MsgNoCommands, true)
		return
	}
	respond(h.Responder, i, formatting.MsgCommandList(cmds), true)
}

func (h *BotHandler) Unregister(i *discordgo.InteractionCreate) {
	name := normalizeCommandName(getStringOption(commandOptions(i), "command"))
	if name == "" {
		respond(h.Responder, i, formatting.MsgCommandRequired, true)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	err := h.Manager.DeleteCommand(ctx, slash.ByName(name), h.Scope)
	switch {
	case errors.Is(err, slash.ErrCommandNotFound):
		respond(h.Responder, i, formatting.MsgCommandNotFound(name), true)
	case err != nil:
		slog.Error("Failed to unregister command", "name", name, "error", err)
		respond(h.Responder, i, formatting.MsgUnregisterError(name), true)
	default:
		h.unbind(name)
		respond(h.Responder, i, formatting.MsgUnregistered(name), false)
	}
}

// unbind drops the local handler of a command that no longer exists remotely.
func (h *BotHandler) unbind(name string) {
	if h.Listener != nil {
		if _, err := h.Listener.StopListeningForCommand(name); err != nil {
			slog.Warn("Failed to stop listening for command", "name", name, "error", err)
		}
	}
	if h.OnUnregistered != nil {
		h.OnUnregistered(name)
	}
}

// Lock replaces the command's permissions in the invoking guild so that only roleID
// may use it. Any overrides set earlier for that command are discarded.
func (h *BotHandler) Lock(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(h.Responder, i, formatting.MsgGuildOnly, true)
		return
	}

	opts := commandOptions(i)
	name := normalizeCommandName(getStringOption(opts, "command"))
	if name == "" {
		respond(h.Responder, i, formatting.MsgCommandRequired, true)
		return
	}
	roleID := getRoleOption(opts, "role")
	if roleID == "" {
		respond(h.Responder, i, formatting.MsgRoleRequired, true)
		return
	}
	if roleID == i.GuildID {
		respond(h.Responder, i, formatting.MsgLockEveryone, true)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	cmd, err := h.Manager.GetCommand(ctx, slash.ByName(name), h.Scope)
	if err != nil {
		slog.Error("Failed to look up command", "name", name, "error", err)
		respond(h.Responder, i, formatting.MsgLockError(name), true)
		return
	}
	if cmd == nil {
		respond(h.Responder, i, formatting.MsgCommandNotFound(name), true)
		return
	}

	perms := []*discordgo.ApplicationCommandPermissions{
		// The @everyone role shares the guild's ID.
		{ID: i.GuildID, Type: discordgo.ApplicationCommandPermissionTypeRole, Permission: false},
		{ID: roleID, Type: discordgo.ApplicationCommandPermissionTypeRole, Permission: true},
	}
	if _, err := h.Manager.EditCommandPermissions(ctx, slash.ByID(cmd.ID), perms, i.GuildID); err != nil {
		slog.Error("Failed to edit command permissions", "name", name, "guild_id", i.GuildID, "error", err)
		respond(h.Responder, i, formatting.MsgLockError(name), true)
		return
	}

	respond(h.Responder, i, formatting.MsgLocked(name, roleID), false)
}

func (h *BotHandler) Greet(i *discordgo.InteractionCreate) {
	ctx, cancel := requestContext()
	defer cancel()

	greeting, err := h.Settings.Greeting(ctx, i.GuildID, invokerID(i))
	if err != nil {
		slog.Error("Failed to load greeting", "guild_id", i.GuildID, "error", err)
		respond(h.Responder, i, formatting.MsgGreetingError, true)
		return
	}
	respond(h.Responder, i, greeting, false)
}

func (h *BotHandler) SetGreeting(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(h.Responder, i, formatting.MsgGuildOnly, true)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	saved, err := h.Settings.SetGreeting(ctx, i.GuildID, getStringOption(commandOptions(i), "text"))
	switch {
	case errors.Is(err, services.ErrEmptyGreeting):
		respond(h.Responder, i, formatting.MsgGreetingEmpty, true)
	case errors.Is(err, services.ErrGreetingTooLong):
		respond(h.Responder, i, formatting.MsgGreetingTooLong(services.MaxGreetingLength), true)
	case err != nil:
		slog.Error("Failed to save greeting", "guild_id", i.GuildID, "error", err)
		respond(h.Responder, i, formatting.MsgGreetingSaveError, true)
	default:
		respond(h.Responder, i, formatting.MsgGreetingSaved(saved), true)
	}
}

func (h *BotHandler) ResetGreeting(i *discordgo.InteractionCreate) {
	if i.GuildID == "" {
		respond(h.Responder, i, formatting.MsgGuildOnly, true)
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := h.Settings.ResetGreeting(ctx, i.GuildID); err != nil {
		slog.Error("Failed to reset greeting", "guild_id", i.GuildID, "error", err)
		respond(h.Responder, i, formatting.MsgGreetingSaveError, true)
		return
	}
	respond(h.Responder, i, formatting.MsgGreetingReset, true)
}

package commands

import (
	"context"
	"log/slog"

	"slash-command-bot/internal/adapters/discord/slash"

	"github.com/bwmarrin/discordgo"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

// GetApplicationCommands returns the bot's command definitions. The greeting commands
// need the settings database and are left out when withGreetings is false.
func GetApplicationCommands(withGreetings bool) []*discordgo.ApplicationCommand {
	cmds := []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check that the bot is responding",
		},
		{
			Name:        "commands",
			Description: "List the commands registered for this bot",
		},
		{
			Name:                     "unregister",
			Description:              "Remove a command registration",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("command", "Name of the command to remove", true),
			},
		},
		{
			Name:                     "lock",
			Description:              "Restrict a command to one role in this server",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("command", "Name of the command to restrict", true),
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        "role",
					Description: "Role allowed to use the command",
					Required:    true,
				},
			},
		},
	}

	if !withGreetings {
		return cmds
	}

	return append(cmds,
		&discordgo.ApplicationCommand{
			Name:        "greet",
			Description: "Show this server's greeting",
		},
		&discordgo.ApplicationCommand{
			Name:                     "set-greeting",
			Description:              "Set this server's greeting ({user} is replaced with a mention)",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("text", "Greeting text", true),
			},
		},
		&discordgo.ApplicationCommand{
			Name:                     "reset-greeting",
			Description:              "Restore the default greeting",
			DefaultMemberPermissions: &adminPerms,
		},
	)
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

// RegisterCommands posts every command to the scope and returns the created commands.
// Failed entries are logged and left nil.
func RegisterCommands(ctx context.Context, manager CommandManager, cmds []*discordgo.ApplicationCommand, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, len(cmds))

	for i, cmd := range cmds {
		posted, err := manager.PostCommand(ctx, cmd, guildID, nil)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered[i] = posted.Command
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(ctx context.Context, manager CommandManager, cmds []*discordgo.ApplicationCommand, guildID string) {
	for _, cmd := range cmds {
		if cmd == nil {
			continue
		}
		if err := manager.DeleteCommand(ctx, slash.ByID(cmd.ID), guildID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}

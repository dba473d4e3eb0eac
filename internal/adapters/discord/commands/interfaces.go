package commands

import (
	"context"

	"slash-command-bot/internal/adapters/discord/slash"

	"github.com/bwmarrin/discordgo"
)

// CommandManager is implemented by *slash.Manager.
type CommandManager interface {
	PostCommand(ctx context.Context, cmd *discordgo.ApplicationCommand, guildID string, perms []*discordgo.ApplicationCommandPermissions) (*slash.PostedCommand, error)
	DeleteCommand(ctx context.Context, ref slash.CommandRef, guildID string) error
	EditCommandPermissions(ctx context.Context, ref slash.CommandRef, perms []*discordgo.ApplicationCommandPermissions, guildID string) (*discordgo.GuildApplicationCommandPermissions, error)
	GetCommand(ctx context.Context, ref slash.CommandRef, guildID string) (*discordgo.ApplicationCommand, error)
	GetCommands(ctx context.Context, guildID string) ([]*discordgo.ApplicationCommand, error)
}

// Responder is implemented by *slash.Dispatcher.
type Responder interface {
	RespondToInteraction(ctx context.Context, i *discordgo.Interaction, message string) error
	RespondEphemeral(ctx context.Context, i *discordgo.Interaction, message string) error
}

// Listener is implemented by *slash.Dispatcher.
type Listener interface {
	ListenForCommand(h slash.HandlerFunc, names ...string) error
	StopListeningForCommand(name string) (slash.HandlerFunc, error)
}

package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"slash-command-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const requestTimeout = 10 * time.Second

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func respond(r Responder, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	ctx, cancel := requestContext()
	defer cancel()

	var err error
	if ephemeral {
		err = r.RespondEphemeral(ctx, i.Interaction, msg)
	} else {
		err = r.RespondToInteraction(ctx, i.Interaction, msg)
	}

	command := commandName(i)
	if err != nil {
		slog.Error("Failed to respond to interaction", "name", command, "error", err)
		metrics.DiscordMessagesSent.WithLabelValues(command, "failure").Inc()
		return
	}
	metrics.DiscordMessagesSent.WithLabelValues(command, "success").Inc()
}

func commandName(i *discordgo.InteractionCreate) string {
	if i == nil || i.Interaction == nil {
		return ""
	}
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return ""
	}
	return data.Name
}

func commandOptions(i *discordgo.InteractionCreate) []*discordgo.ApplicationCommandInteractionDataOption {
	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return nil
	}
	return data.Options
}

func getStringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

// getRoleOption returns the role ID of a role option.
func getRoleOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name != name || opt.Type != discordgo.ApplicationCommandOptionRole {
			continue
		}
		if id, ok := opt.Value.(string); ok {
			return id
		}
	}
	return ""
}

// normalizeCommandName maps user input such as " /Ping " to the stored form "ping".
func normalizeCommandName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	return cases.Lower(language.Und).String(name)
}

func invokerID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

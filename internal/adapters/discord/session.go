package discord

import (
	"log/slog"

	"slash-command-bot/internal/config"

	"github.com/bwmarrin/discordgo"
)

// Intents requested by the bot. Interactions are delivered regardless of intents;
// guild events keep the state cache (and the Ready guild count) populated.
const Intents = discordgo.IntentsGuilds

func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	discord, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	discord.Identify.Intents = Intents

	return discord, nil
}

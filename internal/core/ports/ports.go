package ports

import (
	"context"

	"slash-command-bot/internal/core/domain"
)

type Repository interface {
	SaveGreeting(ctx context.Context, discordGuildID, greeting string) error
	GetGuildSettings(ctx context.Context, discordGuildID string) (*domain.GuildSettings, error)
	DeleteGuildSettings(ctx context.Context, discordGuildID string) error
	Close()
}

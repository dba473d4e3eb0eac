package domain

import "time"

// UserPlaceholder is replaced with a mention of the invoking user when a greeting is shown.
const UserPlaceholder = "{user}"

type GuildSettings struct {
	DiscordGuildID string
	Greeting       string
	UpdatedAt      time.Time
}

package commands

import (
	"slash-command-bot/internal/adapters/discord/formatting"
	"slash-command-bot/internal/adapters/discord/slash"

	"github.com/bwmarrin/discordgo"
)

type Middleware func(slash.HandlerFunc) slash.HandlerFunc

// WithAdmin returns middleware that only lets members with the Administrator
// permission through and answers everyone else with an ephemeral refusal.
func WithAdmin(r Responder) Middleware {
	return func(next slash.HandlerFunc) slash.HandlerFunc {
		return func(i *discordgo.InteractionCreate) {
			if i.Member == nil || i.Member.Permissions&discordgo.PermissionAdministrator == 0 {
				respond(r, i, formatting.MsgAdminRequired, true)
				return
			}
			next(i)
		}
	}
}

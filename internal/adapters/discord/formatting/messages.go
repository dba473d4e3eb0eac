package formatting

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	MsgAdminRequired     = "You need Administrator permissions to use this command."
	MsgGuildOnly         = "This command can only be used inside a server."
	MsgPong              = "Pong!"
	MsgCommandRequired   = "Command name is required."
	MsgRoleRequired      = "Role is required."
	MsgLockEveryone      = "Pick a role other than @everyone; everyone can already use the command."
	MsgListError         = "Failed to fetch registered commands."
	MsgNoCommands        = "No commands are registered in this scope."
	MsgGreetingSaveError = "Failed to save the greeting."
	MsgGreetingError     = "Failed to load the greeting."
	MsgGreetingReset     = "Greeting reset to the default."
	MsgGreetingEmpty     = "Greeting text is required."
)

func MsgCommandList(cmds []*discordgo.ApplicationCommand) string {
	var b strings.Builder
	b.WriteString("Registered commands:\n")
	for _, cmd := range cmds {
		fmt.Fprintf(&b, "- `/%s` %s\n", cmd.Name, cmd.Description)
	}
	return b.String()
}

func MsgCommandNotFound(name string) string {
	return fmt.Sprintf("No command named `/%s` is registered.", name)
}

func MsgUnregisterError(name string) string {
	return fmt.Sprintf("Failed to unregister `/%s`.", name)
}

func MsgUnregistered(name string) string {
	return fmt.Sprintf("Unregistered `/%s`. It may take a moment to disappear from clients.", name)
}

func MsgLockError(name string) string {
	return fmt.Sprintf("Failed to update permissions for `/%s`.", name)
}

func MsgLocked(name, roleID string) string {
	return fmt.Sprintf("`/%s` is now restricted to <@&%s> in this server.", name, roleID)
}

func MsgGreetingSaved(greeting string) string {
	return fmt.Sprintf("Greeting saved: %s", greeting)
}

func MsgGreetingTooLong(limit int) string {
	return fmt.Sprintf("Greeting must be at most %d characters.", limit)
}

package slash

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

type refKind uint8

const (
	refNone refKind = iota
	refID
	refName
)

// CommandRef points at an existing command either by its platform ID or by its name.
// The zero value references nothing and is rejected by every operation.
type CommandRef struct {
	kind  refKind
	value string
}

// ByID references a command by its platform-assigned ID. Prefer it over ByName,
// which costs an extra list request to resolve.
func ByID(id string) CommandRef {
	return CommandRef{kind: refID, value: id}
}

// ByName references a command by name within a scope.
func ByName(name string) CommandRef {
	return CommandRef{kind: refName, value: name}
}

// ID returns the referenced ID and whether the reference is an ID reference.
func (r CommandRef) ID() (string, bool) {
	return r.value, r.kind == refID
}

// Name returns the referenced name and whether the reference is a name reference.
func (r CommandRef) Name() (string, bool) {
	return r.value, r.kind == refName
}

func (r CommandRef) String() string {
	switch r.kind {
	case refID:
		return "id:" + r.value
	case refName:
		return "name:" + r.value
	default:
		return "<none>"
	}
}

func (r CommandRef) validate() error {
	switch r.kind {
	case refID:
		if _, err := snowflake.Parse(r.value); err != nil {
			return fmt.Errorf("%w: command id %q is not a snowflake", ErrInvalidArgument, r.value)
		}
	case refName:
		if r.value == "" {
			return fmt.Errorf("%w: command name is empty", ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: no command specified, give either a command id (preferred) or a name", ErrInvalidArgument)
	}
	return nil
}

func (r CommandRef) matches(cmd *discordgo.ApplicationCommand) bool {
	if cmd == nil {
		return false
	}
	switch r.kind {
	case refID:
		return cmd.ID == r.value
	case refName:
		return cmd.Name == r.value
	}
	return false
}

func validateGuildID(guildID string) error {
	if guildID == "" {
		return nil
	}
	if _, err := snowflake.Parse(guildID); err != nil {
		return fmt.Errorf("%w: guild id %q is not a snowflake", ErrInvalidArgument, guildID)
	}
	return nil
}

package slash

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"slash-command-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
	"github.com/disgoorg/snowflake/v2"
)

// Manager creates, looks up and deletes application commands and replaces their
// permissions. Every method takes a guild ID; an empty guild ID selects the global scope.
type Manager struct {
	session Session
	appID   string
}

// PostedCommand is the result of PostCommand. Permissions is nil unless permissions
// were supplied, in which case it holds the result of the permission edit.
type PostedCommand struct {
	Command     *discordgo.ApplicationCommand
	Permissions *discordgo.GuildApplicationCommandPermissions
}

func NewManager(session Session, appID string) (*Manager, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session is nil", ErrInvalidArgument)
	}
	if _, err := snowflake.Parse(appID); err != nil {
		return nil, fmt.Errorf("%w: application id %q is not a snowflake", ErrInvalidArgument, appID)
	}
	return &Manager{session: session, appID: appID}, nil
}

// AppID returns the application the manager acts for.
func (m *Manager) AppID() string {
	return m.appID
}

// PostCommand creates cmd in the given scope. A nil perms skips the permission edit;
// any non-nil slice, including an empty one, is applied with EditCommandPermissions
// using the ID of the created command.
func (m *Manager) PostCommand(ctx context.Context, cmd *discordgo.ApplicationCommand, guildID string, perms []*discordgo.ApplicationCommandPermissions) (*PostedCommand, error) {
	if cmd == nil {
		return nil, fmt.Errorf("%w: command data is nil", ErrInvalidArgument)
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("%w: command data has no name", ErrInvalidArgument)
	}
	if err := validateGuildID(guildID); err != nil {
		return nil, err
	}

	start := time.Now()
	created, err := m.session.ApplicationCommandCreate(m.appID, guildID, cmd, discordgo.WithContext(ctx))
	observe("create", start, err)
	if err != nil {
		return nil, err
	}
	slog.Info("Created command", "name", created.Name, "id", created.ID, "guild", guildID)

	posted := &PostedCommand{Command: created}
	if perms == nil {
		return posted, nil
	}

	posted.Permissions, err = m.EditCommandPermissions(ctx, ByID(created.ID), perms, guildID)
	if err != nil {
		return nil, err
	}
	return posted, nil
}

// DeleteCommand deletes the referenced command. A name reference is first resolved
// with GetCommand.
func (m *Manager) DeleteCommand(ctx context.Context, ref CommandRef, guildID string) error {
	id, err := m.resolve(ctx, ref, guildID)
	if err != nil {
		return err
	}

	start := time.Now()
	err = m.session.ApplicationCommandDelete(m.appID, guildID, id, discordgo.WithContext(ctx))
	observe("delete", start, err)
	if err != nil {
		return err
	}
	slog.Info("Deleted command", "ref", ref.String(), "id", id, "guild", guildID)
	return nil
}

// EditCommandPermissions replaces the whole permission set of the referenced command.
// Entries are not merged with what the platform already holds; a nil perms clears
// every override.
func (m *Manager) EditCommandPermissions(ctx context.Context, ref CommandRef, perms []*discordgo.ApplicationCommandPermissions, guildID string) (*discordgo.GuildApplicationCommandPermissions, error) {
	id, err := m.resolve(ctx, ref, guildID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		perms = []*discordgo.ApplicationCommandPermissions{}
	}

	start := time.Now()
	err = m.session.ApplicationCommandPermissionsEdit(m.appID, guildID, id,
		&discordgo.ApplicationCommandPermissionsList{Permissions: perms}, discordgo.WithContext(ctx))
	observe("edit_permissions", start, err)
	if err != nil {
		return nil, err
	}
	slog.Info("Replaced command permissions", "id", id, "guild", guildID, "entries", len(perms))

	return &discordgo.GuildApplicationCommandPermissions{
		ID:            id,
		ApplicationID: m.appID,
		GuildID:       guildID,
		Permissions:   perms,
	}, nil
}

// GetCommand returns the first command in the scope matching ref, or nil when none does.
func (m *Manager) GetCommand(ctx context.Context, ref CommandRef, guildID string) (*discordgo.ApplicationCommand, error) {
	if err := ref.validate(); err != nil {
		return nil, err
	}

	cmds, err := m.GetCommands(ctx, guildID)
	if err != nil {
		return nil, err
	}

	for _, cmd := range cmds {
		if ref.matches(cmd) {
			return cmd, nil
		}
	}
	slog.Debug("No command matched reference", "ref", ref.String(), "guild", guildID)
	return nil, nil
}

// GetCommands lists every command in the scope.
func (m *Manager) GetCommands(ctx context.Context, guildID string) ([]*discordgo.ApplicationCommand, error) {
	if err := validateGuildID(guildID); err != nil {
		return nil, err
	}

	start := time.Now()
	cmds, err := m.session.ApplicationCommands(m.appID, guildID, discordgo.WithContext(ctx))
	observe("list", start, err)
	if err != nil {
		return nil, err
	}
	return cmds, nil
}

// resolve turns ref into a command ID, listing the scope for name references.
func (m *Manager) resolve(ctx context.Context, ref CommandRef, guildID string) (string, error) {
	if err := ref.validate(); err != nil {
		return "", err
	}
	if err := validateGuildID(guildID); err != nil {
		return "", err
	}

	if id, ok := ref.ID(); ok {
		return id, nil
	}

	name, _ := ref.Name()
	cmd, err := m.GetCommand(ctx, ref, guildID)
	if err != nil {
		return "", err
	}
	if cmd == nil {
		return "", fmt.Errorf("%w: no command found with name %s", ErrCommandNotFound, name)
	}
	return cmd.ID, nil
}

func observe(operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.CommandRequests.WithLabelValues(operation, status).Inc()
	metrics.CommandRequestDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
}

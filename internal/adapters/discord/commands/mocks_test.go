package commands

import (
	"context"

	"slash-command-bot/internal/adapters/discord/slash"
	"slash-command-bot/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

type mockManager struct {
	postFunc    func(ctx context.Context, cmd *discordgo.ApplicationCommand, guildID string, perms []*discordgo.ApplicationCommandPermissions) (*slash.PostedCommand, error)
	deleteFunc  func(ctx context.Context, ref slash.CommandRef, guildID string) error
	editFunc    func(ctx context.Context, ref slash.CommandRef, perms []*discordgo.ApplicationCommandPermissions, guildID string) (*discordgo.GuildApplicationCommandPermissions, error)
	getFunc     func(ctx context.Context, ref slash.CommandRef, guildID string) (*discordgo.ApplicationCommand, error)
	getManyFunc func(ctx context.Context, guildID string) ([]*discordgo.ApplicationCommand, error)
}

func (m *mockManager) PostCommand(ctx context.Context, cmd *discordgo.ApplicationCommand, guildID string, perms []*discordgo.ApplicationCommandPermissions) (*slash.PostedCommand, error) {
	if m.postFunc != nil {
		return m.postFunc(ctx, cmd, guildID, perms)
	}
	return &slash.PostedCommand{Command: &discordgo.ApplicationCommand{ID: "id-" + cmd.Name, Name: cmd.Name}}, nil
}

func (m *mockManager) DeleteCommand(ctx context.Context, ref slash.CommandRef, guildID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ref, guildID)
	}
	return nil
}

func (m *mockManager) EditCommandPermissions(ctx context.Context, ref slash.CommandRef, perms []*discordgo.ApplicationCommandPermissions, guildID string) (*discordgo.GuildApplicationCommandPermissions, error) {
	if m.editFunc != nil {
		return m.editFunc(ctx, ref, perms, guildID)
	}
	return &discordgo.GuildApplicationCommandPermissions{}, nil
}

func (m *mockManager) GetCommand(ctx context.Context, ref slash.CommandRef, guildID string) (*discordgo.ApplicationCommand, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, ref, guildID)
	}
	return nil, nil
}

func (m *mockManager) GetCommands(ctx context.Context, guildID string) ([]*discordgo.ApplicationCommand, error) {
	if m.getManyFunc != nil {
		return m.getManyFunc(ctx, guildID)
	}
	return nil, nil
}

type mockResponder struct {
	err           error
	responses     int
	lastMessage   string
	lastEphemeral bool
}

func (m *mockResponder) RespondToInteraction(ctx context.Context, i *discordgo.Interaction, message string) error {
	m.responses++
	m.lastMessage = message
	m.lastEphemeral = false
	return m.err
}

func (m *mockResponder) RespondEphemeral(ctx context.Context, i *discordgo.Interaction, message string) error {
	m.responses++
	m.lastMessage = message
	m.lastEphemeral = true
	return m.err
}

type mockListener struct {
	names   []string
	stopped []string
	err     error
	stopErr error
}

func (m *mockListener) ListenForCommand(h slash.HandlerFunc, names ...string) error {
	if m.err != nil {
		return m.err
	}
	m.names = append(m.names, names...)
	return nil
}

func (m *mockListener) StopListeningForCommand(name string) (slash.HandlerFunc, error) {
	m.stopped = append(m.stopped, name)
	return nil, m.stopErr
}

// gatewaySession is a slash.Session with no remote side, for wiring a real
// slash.Dispatcher into handler tests.
type gatewaySession struct{}

func (gatewaySession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	return cmd, nil
}

func (gatewaySession) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	return nil, nil
}

func (gatewaySession) ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error {
	return nil
}

func (gatewaySession) ApplicationCommandPermissionsEdit(appID, guildID, cmdID string, permissions *discordgo.ApplicationCommandPermissionsList, options ...discordgo.RequestOption) error {
	return nil
}

func (gatewaySession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	return nil
}

func (gatewaySession) AddHandler(handler interface{}) func() {
	return func() {}
}

type mockRepository struct {
	saveGreetingFunc     func(ctx context.Context, guildID, greeting string) error
	getGuildSettingsFunc func(ctx context.Context, guildID string) (*domain.GuildSettings, error)
	deleteFunc           func(ctx context.Context, guildID string) error
}

func (m *mockRepository) SaveGreeting(ctx context.Context, guildID, greeting string) error {
	if m.saveGreetingFunc != nil {
		return m.saveGreetingFunc(ctx, guildID, greeting)
	}
	return nil
}

func (m *mockRepository) GetGuildSettings(ctx context.Context, guildID string) (*domain.GuildSettings, error) {
	if m.getGuildSettingsFunc != nil {
		return m.getGuildSettingsFunc(ctx, guildID)
	}
	return nil, nil
}

func (m *mockRepository) DeleteGuildSettings(ctx context.Context, guildID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, guildID)
	}
	return nil
}

func (m *mockRepository) Close() {}

func makeInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "222222222222222222",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "42"},
				Permissions: discordgo.PermissionAdministrator,
			},
			Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func roleOpt(name, roleID string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionRole,
		Value: roleID,
	}
}

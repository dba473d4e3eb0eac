package slash

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// mockSession implements Session and records every request in order.
type mockSession struct {
	createFunc  func(appID, guildID string, cmd *discordgo.ApplicationCommand) (*discordgo.ApplicationCommand, error)
	listFunc    func(appID, guildID string) ([]*discordgo.ApplicationCommand, error)
	deleteFunc  func(appID, guildID, cmdID string) error
	permsFunc   func(appID, guildID, cmdID string, perms *discordgo.ApplicationCommandPermissionsList) error
	respondFunc func(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error

	mu            sync.Mutex
	calls         []string
	handlers      []interface{}
	detachCount   int
	lastResponse  *discordgo.InteractionResponse
	lastPerms     *discordgo.ApplicationCommandPermissionsList
	lastDeletedID string
}

func (m *mockSession) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockSession) recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockSession) ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, opts ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error) {
	m.record("create")
	if m.createFunc != nil {
		return m.createFunc(appID, guildID, cmd)
	}
	return &discordgo.ApplicationCommand{ID: "1000", Name: cmd.Name, GuildID: guildID}, nil
}

func (m *mockSession) ApplicationCommands(appID, guildID string, opts ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	m.record("list")
	if m.listFunc != nil {
		return m.listFunc(appID, guildID)
	}
	return nil, nil
}

func (m *mockSession) ApplicationCommandDelete(appID, guildID, cmdID string, opts ...discordgo.RequestOption) error {
	m.record("delete")
	m.lastDeletedID = cmdID
	if m.deleteFunc != nil {
		return m.deleteFunc(appID, guildID, cmdID)
	}
	return nil
}

func (m *mockSession) ApplicationCommandPermissionsEdit(appID, guildID, cmdID string, perms *discordgo.ApplicationCommandPermissionsList, opts ...discordgo.RequestOption) error {
	m.record("edit_permissions")
	m.lastPerms = perms
	if m.permsFunc != nil {
		return m.permsFunc(appID, guildID, cmdID, perms)
	}
	return nil
}

func (m *mockSession) InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	m.record("respond")
	m.lastResponse = resp
	if m.respondFunc != nil {
		return m.respondFunc(i, resp)
	}
	return nil
}

func (m *mockSession) AddHandler(handler interface{}) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.detachCount++
	}
}

func (m *mockSession) handlerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.handlers)
}

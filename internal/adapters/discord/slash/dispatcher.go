package slash

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"slash-command-bot/internal/metrics"

	"github.com/bwmarrin/discordgo"
)

// HandlerFunc handles one command interaction.
type HandlerFunc func(i *discordgo.InteractionCreate)

const defaultBufferSize = 64

// Dispatcher routes inbound command interactions to the handler bound to the command name.
//
// The gateway listener is attached on the first successful ListenForCommand and only
// enqueues events; a single goroutine drains the queue, so handlers never run concurrently
// with each other.
type Dispatcher struct {
	session Session

	mu       sync.Mutex
	handlers map[string]HandlerFunc
	attached bool
	detach   func()

	events    chan *discordgo.InteractionCreate
	done      chan struct{}
	closeOnce sync.Once
}

// NewDispatcher returns a dispatcher reading events from session. bufferSize bounds the
// number of events waiting for dispatch; values below 1 use the default.
func NewDispatcher(session Session, bufferSize int) (*Dispatcher, error) {
	if session == nil {
		return nil, fmt.Errorf("%w: session is nil", ErrInvalidArgument)
	}
	if bufferSize < 1 {
		bufferSize = defaultBufferSize
	}
	return &Dispatcher{
		session:  session,
		handlers: make(map[string]HandlerFunc),
		events:   make(chan *discordgo.InteractionCreate, bufferSize),
		done:     make(chan struct{}),
	}, nil
}

// ListenForCommand binds h to every name in names. A name may be bound only once; if any
// name is already bound or repeated, nothing is registered and ErrHandlerExists is returned.
func (d *Dispatcher) ListenForCommand(h HandlerFunc, names ...string) error {
	if h == nil {
		return fmt.Errorf("%w: no callback specified", ErrInvalidArgument)
	}
	if len(names) == 0 {
		return fmt.Errorf("%w: no command name specified", ErrInvalidArgument)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: command name is empty", ErrInvalidArgument)
		}
		if _, ok := d.handlers[name]; ok {
			return fmt.Errorf("%w: %s", ErrHandlerExists, name)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s listed twice", ErrHandlerExists, name)
		}
		seen[name] = struct{}{}
	}

	if !d.attached {
		d.detach = d.session.AddHandler(d.enqueue)
		d.attached = true
		go d.run()
		slog.Debug("Attached interaction listener")
	}

	for _, name := range names {
		d.handlers[name] = h
	}
	metrics.RegisteredHandlers.Set(float64(len(d.handlers)))
	return nil
}

// StopListeningForCommand unbinds name and returns the handler that was bound, or nil.
// The gateway listener stays attached.
func (d *Dispatcher) StopListeningForCommand(name string) (HandlerFunc, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: command name is empty", ErrInvalidArgument)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	h, ok := d.handlers[name]
	if !ok {
		return nil, nil
	}
	delete(d.handlers, name)
	metrics.RegisteredHandlers.Set(float64(len(d.handlers)))
	return h, nil
}

// Dispatch invokes the handler bound to the interaction's command name and reports
// whether one ran. Non-command interactions and unknown names are ignored.
func (d *Dispatcher) Dispatch(i *discordgo.InteractionCreate) bool {
	if i == nil || i.Interaction == nil || !isCommandInteraction(i.Type) {
		return false
	}

	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return false
	}
	name := data.Name

	d.mu.Lock()
	h, ok := d.handlers[name]
	d.mu.Unlock()

	if !ok {
		slog.Debug("No handler for command", "name", name)
		metrics.InteractionsDispatched.WithLabelValues("unhandled").Inc()
		return false
	}

	h(i)
	metrics.InteractionsDispatched.WithLabelValues("handled").Inc()
	return true
}

// RespondToInteraction replies to i with message as the visible content.
func (d *Dispatcher) RespondToInteraction(ctx context.Context, i *discordgo.Interaction, message string) error {
	return d.respond(ctx, i, message, 0)
}

// RespondEphemeral replies to i with a message only the invoking user can see.
func (d *Dispatcher) RespondEphemeral(ctx context.Context, i *discordgo.Interaction, message string) error {
	return d.respond(ctx, i, message, discordgo.MessageFlagsEphemeral)
}

func (d *Dispatcher) respond(ctx context.Context, i *discordgo.Interaction, message string, flags discordgo.MessageFlags) error {
	if i == nil {
		return fmt.Errorf("%w: no interaction specified", ErrInvalidArgument)
	}

	return d.session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   flags,
		},
	}, discordgo.WithContext(ctx))
}

// Close stops the dispatch loop and detaches the gateway listener. Events still queued
// are dropped.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)

		d.mu.Lock()
		defer d.mu.Unlock()
		if d.detach != nil {
			d.detach()
		}
	})
}

func (d *Dispatcher) enqueue(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	select {
	case d.events <- i:
	case <-d.done:
	}
}

func (d *Dispatcher) run() {
	for {
		select {
		case i := <-d.events:
			d.Dispatch(i)
		case <-d.done:
			return
		}
	}
}

func isCommandInteraction(t discordgo.InteractionType) bool {
	return t == discordgo.InteractionApplicationCommand ||
		t == discordgo.InteractionApplicationCommandAutocomplete
}

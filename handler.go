package rubikit

import (
	"slices"
	"strings"
)

// CommandPrefix marks a message text as a command.
const CommandPrefix = "/"

// HandlerFunc is the function signature for message and callback handlers.
type HandlerFunc func(ctx *Context) error

// InlineHandlerFunc is the function signature for the inline query handler.
type InlineHandlerFunc func(ctx *InlineContext) error

// Filter defines conditions for when a message handler should be invoked.
// Every set condition must hold; the zero Filter matches every message.
type Filter struct {
	// Commands restricts the handler to texts of the form "/name arg...",
	// where name is one of Commands. The remaining tokens become Context.Args.
	// Empty means any text.
	Commands []string

	// Params validates key=value arguments of a matched command.
	// Nil means arguments are accepted as-is.
	Params Params

	// Locked makes the command hold a per-sender lock while it runs.
	// A second locked command from the same sender is skipped meanwhile.
	Locked bool

	// Chats filters by chat IDs.
	// Empty means all chats.
	Chats []string

	// Senders filters by sender IDs.
	// Empty means all senders.
	Senders []string

	// Custom is a custom filter function, run after command matching.
	// Return true to process the message, false to skip.
	Custom func(ctx *Context) bool
}

// CallbackFilter defines conditions for callback handlers.
type CallbackFilter struct {
	// ButtonID must equal the pressed button's ID.
	// Empty means any button.
	ButtonID string

	// Custom is a custom filter function.
	Custom func(ctx *Context) bool
}

// CommandDef defines a command with its metadata.
type CommandDef struct {
	// Name is the command name without the leading slash.
	Name string

	// Description is shown in the bot's command menu.
	// Commands without a description are not synced.
	Description string

	// Params defines the parameter schema for validation.
	Params Params

	// Locked enables mutual exclusion for this command per sender.
	Locked bool
}

type messageHandler struct {
	fn          HandlerFunc
	filter      Filter
	description string
}

type callbackHandler struct {
	fn     HandlerFunc
	filter CallbackFilter
}

// matchCommand reports whether text invokes one of names and returns the
// whitespace-separated arguments after the command token.
func matchCommand(text string, names []string) ([]string, bool) {
	if !strings.HasPrefix(text, CommandPrefix) {
		return nil, false
	}
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil, false
	}
	name := strings.TrimPrefix(parts[0], CommandPrefix)
	if !slices.Contains(names, name) {
		return nil, false
	}
	return parts[1:], true
}

// matches evaluates the filter. On a command match it stores the arguments
// in ctx before Custom runs.
func (f *Filter) matches(ctx *Context) bool {
	if len(f.Commands) > 0 {
		args, ok := matchCommand(ctx.Text(), f.Commands)
		if !ok {
			return false
		}
		ctx.args = args
	}

	if len(f.Chats) > 0 && !slices.Contains(f.Chats, ctx.ChatID()) {
		return false
	}

	if len(f.Senders) > 0 && !slices.Contains(f.Senders, ctx.SenderID()) {
		return false
	}

	if f.Custom != nil && !f.Custom(ctx) {
		return false
	}

	return true
}

func (f *CallbackFilter) matches(ctx *Context) bool {
	aux := ctx.AuxData()
	if aux == nil {
		return false
	}

	if f.ButtonID != "" && aux.ButtonID != f.ButtonID {
		return false
	}

	if f.Custom != nil && !f.Custom(ctx) {
		return false
	}

	return true
}

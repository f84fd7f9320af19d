package rubikit

import (
	"context"
	"slices"

	"github.com/go-faster/errors"
)

// SyncCommands registers all described commands so they appear in the bot
// menu. Commands without a description are left out. A set identical to the
// last successful sync is not sent again.
func (b *Bot) SyncCommands(ctx context.Context) error {
	commands := b.describedCommands()
	if len(commands) == 0 {
		b.config.Logger.Debug("no commands with descriptions to sync")
		return nil
	}

	b.syncMu.Lock()
	defer b.syncMu.Unlock()

	if slices.Equal(commands, b.synced) {
		b.config.Logger.Debug("commands unchanged, skipping sync", "count", len(commands))
		return nil
	}

	if err := b.SetCommands(ctx, commands); err != nil {
		return errors.Wrap(err, "set commands")
	}
	b.synced = commands

	b.config.Logger.Info("synced commands", "count", len(commands))
	return nil
}

// describedCommands returns the registered commands that carry a
// description, in registration order, each name once.
func (b *Bot) describedCommands() []BotCommand {
	b.mu.RLock()
	handlers := b.messageHandlers
	b.mu.RUnlock()

	var commands []BotCommand
	seen := make(map[string]bool)

	for _, h := range handlers {
		if h.description == "" {
			continue
		}
		for _, name := range h.filter.Commands {
			if seen[name] {
				continue
			}
			seen[name] = true
			commands = append(commands, BotCommand{
				Command:     name,
				Description: h.description,
			})
		}
	}

	return commands
}

// ResetCommands clears the bot menu.
func (b *Bot) ResetCommands(ctx context.Context) error {
	b.syncMu.Lock()
	defer b.syncMu.Unlock()

	if err := b.SetCommands(ctx, []BotCommand{}); err != nil {
		return errors.Wrap(err, "reset commands")
	}
	b.synced = nil

	b.config.Logger.Debug("reset bot commands")
	return nil
}

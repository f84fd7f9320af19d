package rubikit

import (
	"context"

	"github.com/go-faster/errors"
)

// GetMe returns the bot's own profile.
func (b *Bot) GetMe(ctx context.Context) (*BotInfo, error) {
	var data struct {
		Bot BotInfo `json:"bot"`
	}
	if err := b.client.call(ctx, "getMe", nil, &data); err != nil {
		return nil, errors.Wrap(err, "get me")
	}
	return &data.Bot, nil
}

// GetChat returns information about a chat.
func (b *Bot) GetChat(ctx context.Context, chatID string) (*Chat, error) {
	var data struct {
		Chat *Chat `json:"chat"`
	}
	if err := b.client.call(ctx, "getChat", map[string]any{"chat_id": chatID}, &data); err != nil {
		return nil, errors.Wrapf(err, "get chat %s", chatID)
	}
	if data.Chat == nil {
		return nil, errors.Errorf("get chat %s: empty response", chatID)
	}
	return data.Chat, nil
}

// ChatName returns a display name for chatID, or "Unknown" when the chat
// cannot be fetched or has no name.
func (b *Bot) ChatName(ctx context.Context, chatID string) string {
	chat, err := b.GetChat(ctx, chatID)
	if err != nil {
		b.config.Logger.Debug("failed to get chat name", "chat_id", chatID, "error", err)
		return "Unknown"
	}

	switch {
	case chat.FirstName != "" && chat.LastName != "":
		return chat.FirstName + " " + chat.LastName
	case chat.FirstName != "":
		return chat.FirstName
	case chat.LastName != "":
		return chat.LastName
	default:
		return "Unknown"
	}
}

// ChatUsername returns the username of chatID, or "None".
func (b *Bot) ChatUsername(ctx context.Context, chatID string) string {
	chat, err := b.GetChat(ctx, chatID)
	if err != nil {
		b.config.Logger.Debug("failed to get chat username", "chat_id", chatID, "error", err)
		return "None"
	}
	if chat.Username == "" {
		return "None"
	}
	return chat.Username
}

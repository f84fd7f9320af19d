package rubikit

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"
)

// SendMessageRequest is the payload of sendMessage.
type SendMessageRequest struct {
	ChatID              string         `json:"chat_id"`
	Text                string         `json:"text"`
	ChatKeypad          *Keypad        `json:"chat_keypad,omitempty"`
	InlineKeypad        *Keypad        `json:"inline_keypad,omitempty"`
	DisableNotification bool           `json:"disable_notification,omitempty"`
	ReplyToMessageID    string         `json:"reply_to_message_id,omitempty"`
	ChatKeypadType      ChatKeypadType `json:"chat_keypad_type,omitempty"`
}

// SendLocationRequest is the payload of sendLocation.
type SendLocationRequest struct {
	ChatID              string         `json:"chat_id"`
	Latitude            string         `json:"latitude"`
	Longitude           string         `json:"longitude"`
	ChatKeypad          *Keypad        `json:"chat_keypad,omitempty"`
	InlineKeypad        *Keypad        `json:"inline_keypad,omitempty"`
	DisableNotification bool           `json:"disable_notification,omitempty"`
	ReplyToMessageID    string         `json:"reply_to_message_id,omitempty"`
	ChatKeypadType      ChatKeypadType `json:"chat_keypad_type,omitempty"`
}

// messageID extracts the ID of a sent message. The API has used both
// message_id and new_message_id, as strings or numbers.
func messageID(data json.RawMessage) string {
	r := gjson.ParseBytes(data)
	if id := r.Get("message_id"); id.Exists() {
		return id.String()
	}
	return r.Get("new_message_id").String()
}

func (b *Bot) send(ctx context.Context, method string, payload any) (string, error) {
	var data json.RawMessage
	if err := b.client.call(ctx, method, payload, &data); err != nil {
		return "", err
	}
	return messageID(data), nil
}

// SendMessage sends a text message and returns its ID.
func (b *Bot) SendMessage(ctx context.Context, req SendMessageRequest) (string, error) {
	return b.send(ctx, "sendMessage", req)
}

// SendPoll sends a poll and returns its message ID.
func (b *Bot) SendPoll(ctx context.Context, chatID, question string, options []string) (string, error) {
	return b.send(ctx, "sendPoll", map[string]any{
		"chat_id":  chatID,
		"question": question,
		"options":  options,
	})
}

// SendLocation sends a location and returns its message ID.
func (b *Bot) SendLocation(ctx context.Context, req SendLocationRequest) (string, error) {
	return b.send(ctx, "sendLocation", req)
}

// SendContact sends a contact card and returns its message ID.
func (b *Bot) SendContact(ctx context.Context, chatID, firstName, lastName, phoneNumber string) (string, error) {
	return b.send(ctx, "sendContact", map[string]any{
		"chat_id":      chatID,
		"first_name":   firstName,
		"last_name":    lastName,
		"phone_number": phoneNumber,
	})
}

// ForwardMessage forwards a message and returns the new message ID.
func (b *Bot) ForwardMessage(ctx context.Context, fromChatID, messageID, toChatID string, disableNotification bool) (string, error) {
	return b.send(ctx, "forwardMessage", map[string]any{
		"from_chat_id":         fromChatID,
		"message_id":           messageID,
		"to_chat_id":           toChatID,
		"disable_notification": disableNotification,
	})
}

// EditMessageText replaces the text of a sent message.
func (b *Bot) EditMessageText(ctx context.Context, chatID, messageID, text string) error {
	return b.client.call(ctx, "editMessageText", map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
		"text":       text,
	}, nil)
}

// EditInlineKeypad replaces the inline keypad of a sent message.
func (b *Bot) EditInlineKeypad(ctx context.Context, chatID, messageID string, keypad Keypad) error {
	return b.client.call(ctx, "editMessageKeypad", map[string]any{
		"chat_id":       chatID,
		"message_id":    messageID,
		"inline_keypad": keypad,
	}, nil)
}

// DeleteMessage deletes a message.
func (b *Bot) DeleteMessage(ctx context.Context, chatID, messageID string) error {
	return b.client.call(ctx, "deleteMessage", map[string]any{
		"chat_id":    chatID,
		"message_id": messageID,
	}, nil)
}

// SetCommands replaces the bot's command menu.
func (b *Bot) SetCommands(ctx context.Context, commands []BotCommand) error {
	return b.client.call(ctx, "setCommands", map[string]any{
		"bot_commands": commands,
	}, nil)
}

// EditChatKeypad installs keypad as the chat keypad of chatID.
func (b *Bot) EditChatKeypad(ctx context.Context, chatID string, keypad Keypad) error {
	return b.client.call(ctx, "editChatKeypad", map[string]any{
		"chat_id":          chatID,
		"chat_keypad_type": ChatKeypadNew,
		"chat_keypad":      keypad,
	}, nil)
}

// RemoveChatKeypad removes the chat keypad of chatID.
func (b *Bot) RemoveChatKeypad(ctx context.Context, chatID string) error {
	return b.client.call(ctx, "editChatKeypad", map[string]any{
		"chat_id":          chatID,
		"chat_keypad_type": ChatKeypadRemoved,
	}, nil)
}

// EndpointType selects which update kind a webhook endpoint receives.
type EndpointType string

const (
	EndpointReceiveUpdate        EndpointType = "ReceiveUpdate"
	EndpointReceiveInlineMessage EndpointType = "ReceiveInlineMessage"
	EndpointReceiveQuery         EndpointType = "ReceiveQuery"
	EndpointGetSelectionItem     EndpointType = "GetSelectionItem"
	EndpointSearchSelectionItems EndpointType = "SearchSelectionItems"
)

// UpdateBotEndpoint registers url as the endpoint for updates of type t.
func (b *Bot) UpdateBotEndpoint(ctx context.Context, url string, t EndpointType) error {
	return b.client.call(ctx, "updateBotEndpoints", map[string]any{
		"url":  url,
		"type": t,
	}, nil)
}

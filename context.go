package rubikit

import "context"

// Context provides access to the current message or callback update and
// methods that reply to it.
type Context struct {
	context.Context

	bot     *Bot
	update  *Update
	message *Message

	// Command arguments (nil unless a Commands filter matched)
	args []string

	// Parsed command parameters (nil unless a Params schema is set)
	params ParsedParams
}

func newContext(ctx context.Context, bot *Bot, u *Update) *Context {
	return &Context{
		Context: ctx,
		bot:     bot,
		update:  u,
		message: u.Message,
	}
}

// Bot returns the bot that received the update.
func (c *Context) Bot() *Bot {
	return c.bot
}

// Update returns the decoded update.
func (c *Context) Update() *Update {
	return c.update
}

// Message returns the message payload.
func (c *Context) Message() *Message {
	return c.message
}

// ChatID returns the chat the message was sent in.
func (c *Context) ChatID() string {
	return c.update.ChatID
}

// MessageID returns the message ID.
func (c *Context) MessageID() string {
	return c.message.MessageID
}

// SenderID returns the sender's ID.
func (c *Context) SenderID() string {
	return c.message.SenderID
}

// Text returns the message text.
func (c *Context) Text() string {
	return c.message.Text
}

// AuxData returns the button/start metadata, or nil for organic messages.
func (c *Context) AuxData() *AuxData {
	return c.message.AuxData
}

// ButtonID returns the pressed button's ID, or "" for organic messages.
func (c *Context) ButtonID() string {
	if c.message.AuxData == nil {
		return ""
	}
	return c.message.AuxData.ButtonID
}

// IsCallback reports whether the message came from a button press.
func (c *Context) IsCallback() bool {
	return c.message.AuxData != nil
}

// Args returns the command arguments following the command token.
func (c *Context) Args() []string {
	return c.args
}

// Arg returns the i-th command argument or "" if there is none.
func (c *Context) Arg(i int) string {
	if i < 0 || i >= len(c.args) {
		return ""
	}
	return c.args[i]
}

// Params returns the parsed command parameters.
func (c *Context) Params() ParsedParams {
	return c.params
}

// Param returns a single parameter value.
func (c *Context) Param(key string) any {
	if c.params != nil {
		return c.params[key]
	}
	return nil
}

// Session returns the per-chat session of the current chat.
func (c *Context) Session() *Session {
	return c.bot.Session(c.ChatID())
}

// Reply sends text as a reply to the current message.
func (c *Context) Reply(text string) error {
	_, err := c.bot.SendMessage(c, SendMessageRequest{
		ChatID:           c.ChatID(),
		Text:             text,
		ReplyToMessageID: c.MessageID(),
	})
	return err
}

// Send sends text to the current chat without quoting the message.
func (c *Context) Send(text string) error {
	_, err := c.bot.SendMessage(c, SendMessageRequest{
		ChatID: c.ChatID(),
		Text:   text,
	})
	return err
}

// ReplyKeypad replies with text and replaces the chat keypad.
func (c *Context) ReplyKeypad(text string, keypad Keypad) error {
	_, err := c.bot.SendMessage(c, SendMessageRequest{
		ChatID:           c.ChatID(),
		Text:             text,
		ChatKeypad:       &keypad,
		ChatKeypadType:   ChatKeypadNew,
		ReplyToMessageID: c.MessageID(),
	})
	return err
}

// ReplyInline replies with text and an inline keypad.
func (c *Context) ReplyInline(text string, keypad Keypad) error {
	_, err := c.bot.SendMessage(c, SendMessageRequest{
		ChatID:           c.ChatID(),
		Text:             text,
		InlineKeypad:     &keypad,
		ReplyToMessageID: c.MessageID(),
	})
	return err
}

// ReplyPoll sends a poll to the current chat.
func (c *Context) ReplyPoll(question string, options []string) error {
	_, err := c.bot.SendPoll(c, c.ChatID(), question, options)
	return err
}

// ReplyLocation replies with a location.
func (c *Context) ReplyLocation(latitude, longitude string) error {
	_, err := c.bot.SendLocation(c, SendLocationRequest{
		ChatID:           c.ChatID(),
		Latitude:         latitude,
		Longitude:        longitude,
		ReplyToMessageID: c.MessageID(),
	})
	return err
}

// ReplyContact sends a contact to the current chat.
func (c *Context) ReplyContact(firstName, lastName, phoneNumber string) error {
	_, err := c.bot.SendContact(c, c.ChatID(), firstName, lastName, phoneNumber)
	return err
}

// Edit replaces the text of the current message.
func (c *Context) Edit(text string) error {
	return c.bot.EditMessageText(c, c.ChatID(), c.MessageID(), text)
}

// Delete deletes the current message.
func (c *Context) Delete() error {
	return c.bot.DeleteMessage(c, c.ChatID(), c.MessageID())
}

// InlineContext provides access to an inline query update.
type InlineContext struct {
	context.Context

	bot    *Bot
	update *Update
	inline *InlineMessage
}

// Bot returns the bot that received the update.
func (c *InlineContext) Bot() *Bot {
	return c.bot
}

// Update returns the decoded update.
func (c *InlineContext) Update() *Update {
	return c.update
}

// Inline returns the inline message payload.
func (c *InlineContext) Inline() *InlineMessage {
	return c.inline
}

// ChatID returns the chat the inline message belongs to.
func (c *InlineContext) ChatID() string {
	return c.inline.ChatID
}

// MessageID returns the inline message ID.
func (c *InlineContext) MessageID() string {
	return c.inline.MessageID
}

// SenderID returns the user who triggered the query.
func (c *InlineContext) SenderID() string {
	return c.inline.SenderID
}

// Text returns the query text.
func (c *InlineContext) Text() string {
	return c.inline.Text
}

// ButtonID returns the pressed button's ID, if any.
func (c *InlineContext) ButtonID() string {
	if c.inline.AuxData == nil {
		return ""
	}
	return c.inline.AuxData.ButtonID
}

// Send sends text to the inline message's chat.
func (c *InlineContext) Send(text string) error {
	_, err := c.bot.SendMessage(c, SendMessageRequest{
		ChatID: c.ChatID(),
		Text:   text,
	})
	return err
}

// Reply sends text as a reply to the inline message.
func (c *InlineContext) Reply(text string) error {
	_, err := c.bot.SendMessage(c, SendMessageRequest{
		ChatID:           c.ChatID(),
		Text:             text,
		ReplyToMessageID: c.MessageID(),
	})
	return err
}

// Delete deletes the inline message.
func (c *InlineContext) Delete() error {
	return c.bot.DeleteMessage(c, c.ChatID(), c.MessageID())
}

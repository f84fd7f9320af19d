package rubikit

import (
	"context"
	"runtime/debug"
)

// dispatch routes a decoded update to its handlers:
// inline queries go to the inline slot only, button presses go to the first
// callback handler only, and everything else goes to every message handler.
func (b *Bot) dispatch(ctx context.Context, u *Update) {
	if u.Inline != nil {
		b.handleInline(ctx, u)
		return
	}
	if u.Message == nil {
		return
	}

	if u.IsCallback() && b.handleCallback(ctx, u) {
		return
	}
	b.handleMessage(ctx, u)
}

func (b *Bot) handleInline(ctx context.Context, u *Update) {
	b.mu.RLock()
	fn := b.inlineHandler
	b.mu.RUnlock()

	if fn == nil {
		return
	}

	inCtx := &InlineContext{
		Context: ctx,
		bot:     b,
		update:  u,
		inline:  u.Inline,
	}
	b.invoke("inline handler error", u, func() error { return fn(inCtx) })
}

// handleCallback offers the update to the first callback handler and reports
// whether there was one. Later handlers are never consulted.
func (b *Bot) handleCallback(ctx context.Context, u *Update) bool {
	b.mu.RLock()
	handlers := b.callbackHandlers
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return false
	}

	h := handlers[0]
	cbCtx := newContext(ctx, b, u)
	if !h.filter.matches(cbCtx) {
		b.config.Logger.Debug("callback filter not matched",
			"chat_id", u.ChatID,
			"button_id", cbCtx.ButtonID())
		return true
	}
	b.invoke("callback handler error", u, func() error { return h.fn(cbCtx) })
	return true
}

func (b *Bot) handleMessage(ctx context.Context, u *Update) {
	b.mu.RLock()
	handlers := b.messageHandlers
	b.mu.RUnlock()

	for _, h := range handlers {
		// Each handler gets its own context so args and params don't leak.
		msgCtx := newContext(ctx, b, u)
		if !h.filter.matches(msgCtx) {
			continue
		}
		b.runMessageHandler(msgCtx, h)
	}
}

func (b *Bot) runMessageHandler(ctx *Context, h messageHandler) {
	if len(h.filter.Commands) > 0 {
		b.config.Logger.Debug("received command",
			"commands", h.filter.Commands,
			"sender_id", ctx.SenderID(),
			"chat_id", ctx.ChatID(),
			"text", ctx.Text())

		params, err := parseParams(ctx.args, h.filter.Params)
		if err != nil {
			if rerr := ctx.Reply("Error: " + err.Error()); rerr != nil {
				b.config.Logger.Warn("failed to report parameter error", "chat_id", ctx.ChatID(), "error", rerr)
			}
			return
		}
		ctx.params = params
	}

	run := func() {
		b.invoke("message handler error", ctx.update, func() error { return h.fn(ctx) })
	}

	if !h.filter.Locked {
		run()
		return
	}
	if !b.commandLock.Do(ctx.SenderID(), run) {
		b.config.Logger.Debug("command blocked by lock",
			"commands", h.filter.Commands,
			"sender_id", ctx.SenderID())
	}
}

// invoke runs a handler, logging its error or panic. Neither reaches the
// poll loop.
func (b *Bot) invoke(kind string, u *Update, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			b.config.Logger.Error(kind,
				"chat_id", u.ChatID,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	if err := fn(); err != nil {
		b.config.Logger.Error(kind, "chat_id", u.ChatID, "error", err)
	}
}

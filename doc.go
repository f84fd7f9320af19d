// Package rubikit provides a framework for building Rubika bots on top of
// the HTTP Bot API.
//
// It long-polls getUpdates and dispatches each update on its own goroutine:
//   - Message handlers with command, chat, sender and custom filters
//   - Command parsing with typed parameter validation
//   - Keypad button presses (callbacks) and inline queries
//   - Per-chat sessions and delayed jobs
//
// Basic usage:
//
//	bot, err := rubikit.New(rubikit.Config{
//	    Token: "your-bot-token",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	bot.Command("echo", nil, func(ctx *rubikit.Context) error {
//	    return ctx.Reply(ctx.Arg(0))
//	})
//
//	bot.OnButton("yes", func(ctx *rubikit.Context) error {
//	    return ctx.Send("confirmed")
//	})
//
//	if err := bot.Run(context.Background()); err != nil {
//	    log.Fatal(err)
//	}
//
// Only the first callback handler is consulted for a button press. Message
// handlers all run, in registration order.
package rubikit

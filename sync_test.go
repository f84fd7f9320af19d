package rubikit

import (
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"testing"
)

func noop(*Context) error { return nil }

func sentCommands(t *testing.T, c apiCall) []BotCommand {
	t.Helper()

	raw, err := json.Marshal(c.Body["bot_commands"])
	if err != nil {
		t.Fatal(err)
	}
	var cmds []BotCommand
	if err := json.Unmarshal(raw, &cmds); err != nil {
		t.Fatalf("bot_commands = %s: %v", raw, err)
	}
	return cmds
}

func TestDescribedCommands(t *testing.T) {
	api := newFakeAPI(t)
	bot := newTestBot(t, api.srv.URL)

	bot.CommandWithDesc(CommandDef{Name: "start", Description: "Start the bot"}, noop)
	bot.Command("hidden", nil, noop)
	bot.LockedCommandWithDesc(CommandDef{Name: "report", Description: "Build a report"}, noop)
	bot.CommandWithDesc(CommandDef{Name: "start", Description: "Duplicate"}, noop)
	bot.OnMessage(Filter{}, noop)

	want := []BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "report", Description: "Build a report"},
	}
	if got := bot.describedCommands(); !slices.Equal(got, want) {
		t.Errorf("describedCommands() = %v, want %v", got, want)
	}
}

func TestSyncCommands(t *testing.T) {
	api := newFakeAPI(t)
	api.setRespond(func(string, int) (int, string) { return http.StatusOK, `{"status":"OK","data":{}}` })
	bot := newTestBot(t, api.srv.URL)

	bot.CommandWithDesc(CommandDef{Name: "start", Description: "Start the bot"}, noop)
	bot.CommandWithDesc(CommandDef{Name: "help", Description: "Show help"}, noop)

	ctx := context.Background()
	if err := bot.SyncCommands(ctx); err != nil {
		t.Fatalf("SyncCommands() error = %v", err)
	}
	if err := bot.SyncCommands(ctx); err != nil {
		t.Fatalf("second SyncCommands() error = %v", err)
	}

	calls := api.callsTo("setCommands")
	if len(calls) != 1 {
		t.Fatalf("setCommands calls = %d, want 1 (unchanged set is skipped)", len(calls))
	}
	got := sentCommands(t, calls[0])
	want := []BotCommand{
		{Command: "start", Description: "Start the bot"},
		{Command: "help", Description: "Show help"},
	}
	if !slices.Equal(got, want) {
		t.Errorf("bot_commands = %v, want %v", got, want)
	}

	if err := bot.ResetCommands(ctx); err != nil {
		t.Fatalf("ResetCommands() error = %v", err)
	}
	if err := bot.SyncCommands(ctx); err != nil {
		t.Fatalf("SyncCommands() after reset error = %v", err)
	}

	calls = api.callsTo("setCommands")
	if len(calls) != 3 {
		t.Fatalf("setCommands calls = %d, want 3", len(calls))
	}
	if reset := sentCommands(t, calls[1]); len(reset) != 0 {
		t.Errorf("reset sent %v, want empty list", reset)
	}
}

func TestSyncCommandsNothingToSync(t *testing.T) {
	api := newFakeAPI(t)
	bot := newTestBot(t, api.srv.URL)
	bot.Command("quiet", nil, noop)

	if err := bot.SyncCommands(context.Background()); err != nil {
		t.Fatalf("SyncCommands() error = %v", err)
	}
	if n := len(api.callsTo("setCommands")); n != 0 {
		t.Errorf("setCommands calls = %d, want 0", n)
	}
}

func TestSyncCommandsFailure(t *testing.T) {
	api := newFakeAPI(t)
	api.setRespond(func(string, int) (int, string) { return http.StatusOK, `{"status":"INVALID_INPUT"}` })
	bot := newTestBot(t, api.srv.URL)
	bot.CommandWithDesc(CommandDef{Name: "start", Description: "Start"}, noop)

	if err := bot.SyncCommands(context.Background()); err == nil {
		t.Fatal("SyncCommands() error = nil")
	}
	if bot.synced != nil {
		t.Errorf("synced = %v after a failed sync", bot.synced)
	}
}

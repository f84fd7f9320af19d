package rubikit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gotd/td/clock"
)

var testNow = time.Unix(1700000000, 0)

// fixedClock pins Now and delegates timers to the system clock.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time                      { return c.now }
func (c fixedClock) Timer(d time.Duration) clock.Timer   { return clock.System.Timer(d) }
func (c fixedClock) Ticker(d time.Duration) clock.Ticker { return clock.System.Ticker(d) }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// apiCall is one request received by fakeAPI.
type apiCall struct {
	Method string
	Body   map[string]any
}

// fakeAPI is an httptest Bot API that records every call.
type fakeAPI struct {
	srv *httptest.Server

	mu      sync.Mutex
	calls   []apiCall
	respond func(method string, n int) (int, string)
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{}
	api.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := path.Base(r.URL.Path)

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		api.mu.Lock()
		api.calls = append(api.calls, apiCall{Method: method, Body: body})
		n := 0
		for _, c := range api.calls {
			if c.Method == method {
				n++
			}
		}
		respond := api.respond
		api.mu.Unlock()

		status, out := http.StatusOK, `{"status":"OK","data":{"message_id":"m1"}}`
		if respond != nil {
			status, out = respond(method, n)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, out)
	}))
	t.Cleanup(api.srv.Close)

	return api
}

func (a *fakeAPI) setRespond(fn func(method string, n int) (int, string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.respond = fn
}

// callsTo returns the recorded calls of method.
func (a *fakeAPI) callsTo(method string) []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []apiCall
	for _, c := range a.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func newTestBot(t *testing.T, baseURL string, opts ...func(*Config)) *Bot {
	t.Helper()

	cfg := Config{
		Token:        "test-token-0123456789",
		BaseURL:      baseURL,
		Timeout:      5 * time.Second,
		PollInterval: time.Millisecond,
		Logger:       discardLogger(),
		Clock:        fixedClock{now: testNow},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	bot, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return bot
}

// fetchResult is one scripted getUpdates outcome.
type fetchResult struct {
	page *UpdatesPage
	err  error
}

type fetchCall struct {
	offset string
	limit  int
}

// scriptedFetcher replays results in order and then fails with errExhausted.
type scriptedFetcher struct {
	mu      sync.Mutex
	results []fetchResult
	calls   []fetchCall
}

var errExhausted = &APIError{Method: methodGetUpdates, StatusCode: http.StatusServiceUnavailable, Body: "script exhausted"}

func (f *scriptedFetcher) GetUpdates(_ context.Context, offsetID string, limit int) (*UpdatesPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, fetchCall{offset: offsetID, limit: limit})
	if len(f.results) == 0 {
		return nil, errExhausted
	}
	r := f.results[0]
	f.results = f.results[1:]
	return r.page, r.err
}

func (f *scriptedFetcher) offsets() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.offset
	}
	return out
}

type fetcherFunc func(ctx context.Context, offsetID string, limit int) (*UpdatesPage, error)

func (f fetcherFunc) GetUpdates(ctx context.Context, offsetID string, limit int) (*UpdatesPage, error) {
	return f(ctx, offsetID, limit)
}

func page(next string, updates ...json.RawMessage) fetchResult {
	return fetchResult{page: &UpdatesPage{Updates: updates, NextOffsetID: next}}
}

func timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// newMessageJSON builds a raw NewMessage update sent at sent.
func newMessageJSON(chatID, text string, sent time.Time, aux *AuxData) json.RawMessage {
	msg := map[string]any{
		"message_id": "msg-1",
		"sender_id":  "user-1",
		"text":       text,
		"time":       timestamp(sent),
	}
	if aux != nil {
		msg["aux_data"] = aux
	}
	raw, _ := json.Marshal(map[string]any{
		"type":        "NewMessage",
		"chat_id":     chatID,
		"new_message": msg,
	})
	return raw
}

func inlineJSON(chatID, text string) json.RawMessage {
	raw, _ := json.Marshal(map[string]any{
		"type":    "ReceiveQuery",
		"chat_id": chatID,
		"inline_message": map[string]any{
			"chat_id":    chatID,
			"message_id": "inline-1",
			"sender_id":  "user-1",
			"text":       text,
		},
	})
	return raw
}

// messageUpdate decodes a fresh NewMessage for direct dispatch.
func messageUpdate(t *testing.T, chatID, text string, aux *AuxData) *Update {
	t.Helper()

	u, ok := decoder{staleAfter: 20 * time.Second}.decode(newMessageJSON(chatID, text, testNow, aux), testNow)
	if !ok {
		t.Fatal("decode() dropped a fresh message")
	}
	return u
}

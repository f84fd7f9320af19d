package rubikit

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Bot is the main Rubika bot client.
type Bot struct {
	config  Config
	client  *client
	fetcher UpdateFetcher
	decoder decoder
	log     *zap.Logger

	// Handlers
	mu               sync.RWMutex
	messageHandlers  []messageHandler
	callbackHandlers []callbackHandler
	inlineHandler    InlineHandlerFunc

	// Per-chat sessions
	sessionsMu sync.RWMutex
	sessions   map[string]*Session

	// Command locking
	commandLock *CommandLock

	// Delayed jobs
	jobs *scheduler

	// Last command set pushed by SyncCommands
	syncMu sync.Mutex
	synced []BotCommand

	// Dispatch bookkeeping
	sem      *semaphore.Weighted
	inflight sync.WaitGroup

	// Lifecycle callbacks
	onReady func(ctx context.Context)

	// State
	running atomic.Bool
	cursor  atomic.Pointer[string]
}

// New creates a new Bot with the given configuration.
func New(cfg Config) (*Bot, error) {
	if err := cfg.resolveToken(); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log := cfg.zapLogger()
	c := newClient(&cfg, log)

	bot := &Bot{
		config:      cfg,
		client:      c,
		fetcher:     c,
		decoder:     decoder{staleAfter: cfg.StaleAfter},
		log:         log,
		sessions:    make(map[string]*Session),
		commandLock: NewCommandLock(),
		jobs:        newScheduler(cfg.Clock, cfg.Logger),
	}
	if cfg.MaxConcurrentDispatch > 0 {
		bot.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrentDispatch))
	}

	cfg.Logger.Debug("bot created", "token", cfg.maskedToken(), "base_url", cfg.BaseURL)
	return bot, nil
}

// OnReady sets a callback that's called once the update cursor is primed,
// before the first update is dispatched.
func (b *Bot) OnReady(fn func(ctx context.Context)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onReady = fn
}

// OnMessage registers a handler for new messages. Every matching message
// handler runs, in registration order.
func (b *Bot) OnMessage(filter Filter, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messageHandlers = append(b.messageHandlers, messageHandler{fn: fn, filter: filter})
}

// OnChatMessage registers a handler for messages in specific chats.
func (b *Bot) OnChatMessage(chatIDs []string, fn HandlerFunc) {
	b.OnMessage(Filter{Chats: chatIDs}, fn)
}

// Command registers a command handler with optional parameter schema.
func (b *Bot) Command(name string, params Params, fn HandlerFunc) {
	b.CommandWithFilter(CommandDef{Name: name, Params: params}, Filter{}, fn)
}

// CommandWithDesc registers a command with description (for menu sync).
func (b *Bot) CommandWithDesc(def CommandDef, fn HandlerFunc) {
	b.CommandWithFilter(def, Filter{}, fn)
}

// CommandWithFilter registers a command handler with additional conditions.
// The command name, params and lock flag of def override those of filter.
func (b *Bot) CommandWithFilter(def CommandDef, filter Filter, fn HandlerFunc) {
	filter.Commands = []string{def.Name}
	filter.Params = def.Params
	filter.Locked = def.Locked

	b.mu.Lock()
	defer b.mu.Unlock()
	b.messageHandlers = append(b.messageHandlers, messageHandler{
		fn:          fn,
		filter:      filter,
		description: def.Description,
	})
}

// CommandFrom registers a command handler that only responds to specific senders.
func (b *Bot) CommandFrom(name string, params Params, senderIDs []string, fn HandlerFunc) {
	b.CommandWithFilter(CommandDef{Name: name, Params: params}, Filter{Senders: senderIDs}, fn)
}

// LockedCommand registers a command with mutual exclusion.
func (b *Bot) LockedCommand(name string, params Params, fn HandlerFunc) {
	b.CommandWithFilter(CommandDef{Name: name, Params: params, Locked: true}, Filter{}, fn)
}

// LockedCommandWithDesc registers a locked command with description.
func (b *Bot) LockedCommandWithDesc(def CommandDef, fn HandlerFunc) {
	def.Locked = true
	b.CommandWithFilter(def, Filter{}, fn)
}

// OnCallback registers a handler for keypad button presses.
//
// Only the first registered callback handler is ever consulted for a button
// press, whether or not its filter matches. Register one handler and branch
// on Context.ButtonID, or use filters only for guarding that single handler.
func (b *Bot) OnCallback(filter CallbackFilter, fn HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callbackHandlers = append(b.callbackHandlers, callbackHandler{fn: fn, filter: filter})
}

// OnButton registers a callback handler for a single button ID.
func (b *Bot) OnButton(buttonID string, fn HandlerFunc) {
	b.OnCallback(CallbackFilter{ButtonID: buttonID}, fn)
}

// OnInlineQuery sets the inline query handler, replacing any previous one.
func (b *Bot) OnInlineQuery(fn InlineHandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inlineHandler = fn
}

// Run primes the update cursor and polls for updates until ctx is cancelled
// or fetching updates fails.
func (b *Bot) Run(ctx context.Context) error {
	if !b.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer b.running.Store(false)
	defer func() { _ = b.log.Sync() }()
	defer b.jobs.stop()

	if err := b.prime(ctx); err != nil {
		return err
	}

	if b.config.SyncCommands {
		if err := b.SyncCommands(ctx); err != nil {
			b.config.Logger.Warn("failed to sync commands", "error", err)
		}
	}

	b.mu.RLock()
	onReady := b.onReady
	b.mu.RUnlock()
	if onReady != nil {
		onReady(ctx)
	}

	b.config.Logger.Info("bot started", "token", b.config.maskedToken(), "offset", b.Cursor())

	return b.poll(ctx)
}

// Cursor returns the current update offset, or "" before it is primed.
func (b *Bot) Cursor() string {
	if p := b.cursor.Load(); p != nil {
		return *p
	}
	return ""
}

func (b *Bot) setCursor(offset string) {
	b.cursor.Store(&offset)
}

// Config returns the effective configuration.
func (b *Bot) Config() Config {
	return b.config
}

package rubikit

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/gotd/td/clock"
	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultBaseURL is the Rubika Bot API endpoint.
const DefaultBaseURL = "https://botapi.rubika.ir/v3"

// Config holds the configuration for the bot.
type Config struct {
	// Token is the bot token issued by BotFather.
	Token string

	// BaseURL is the Bot API endpoint without the token segment.
	// Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Timeout bounds every HTTP request.
	// Defaults to 10s if zero.
	Timeout time.Duration

	// PollInterval is the pause between two getUpdates calls.
	// Defaults to 100ms if zero.
	PollInterval time.Duration

	// PollLimit is the page-size hint passed to getUpdates.
	// Defaults to 100 if zero.
	PollLimit int

	// StaleAfter drops new messages older than this.
	// Defaults to 20s if zero.
	StaleAfter time.Duration

	// MaxConcurrentDispatch caps in-flight update dispatches.
	// Zero means every update is dispatched on its own goroutine without limit.
	MaxConcurrentDispatch int

	// SendRetries is how many times a failed outbound request is retried
	// when the failure looks temporary. getUpdates is never retried.
	SendRetries int

	// Platform is reported in the User-Agent header.
	// Defaults to "web" if empty.
	Platform string

	// KeyringService and KeyringAccount locate the token in the OS keychain
	// when Token is empty.
	KeyringService string
	KeyringAccount string

	// Logger is the logger to use. If nil, slog.Default() is used.
	Logger *slog.Logger

	// Clock is the time source. Defaults to clock.System.
	Clock clock.Clock

	// SyncCommands pushes described commands to the bot menu on start.
	SyncCommands bool

	// Verbose enables debug logging for the HTTP transport.
	Verbose bool
}

// envConfig mirrors the environment-configurable part of Config.
type envConfig struct {
	Token                 string        `env:"RUBIKA_TOKEN"`
	BaseURL               string        `env:"RUBIKA_BASE_URL"`
	Timeout               time.Duration `env:"RUBIKA_TIMEOUT"`
	PollInterval          time.Duration `env:"RUBIKA_POLL_INTERVAL"`
	PollLimit             int           `env:"RUBIKA_POLL_LIMIT"`
	StaleAfter            time.Duration `env:"RUBIKA_STALE_AFTER"`
	MaxConcurrentDispatch int           `env:"RUBIKA_MAX_CONCURRENT_DISPATCH"`
	SendRetries           int           `env:"RUBIKA_SEND_RETRIES"`
	Platform              string        `env:"RUBIKA_PLATFORM"`
	KeyringService        string        `env:"RUBIKA_KEYRING_SERVICE" envDefault:"rubikit"`
	KeyringAccount        string        `env:"RUBIKA_KEYRING_ACCOUNT"`
	SyncCommands          bool          `env:"RUBIKA_SYNC_COMMANDS"`
	Verbose               bool          `env:"RUBIKA_VERBOSE"`
}

// LoadConfig builds a Config from RUBIKA_* environment variables.
// Unset values are left zero and receive defaults in New.
func LoadConfig() (Config, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return Config{
		Token:                 ec.Token,
		BaseURL:               ec.BaseURL,
		Timeout:               ec.Timeout,
		PollInterval:          ec.PollInterval,
		PollLimit:             ec.PollLimit,
		StaleAfter:            ec.StaleAfter,
		MaxConcurrentDispatch: ec.MaxConcurrentDispatch,
		SendRetries:           ec.SendRetries,
		Platform:              ec.Platform,
		KeyringService:        ec.KeyringService,
		KeyringAccount:        ec.KeyringAccount,
		SyncCommands:          ec.SyncCommands,
		Verbose:               ec.Verbose,
	}, nil
}

func (c *Config) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	if c.PollInterval == 0 {
		c.PollInterval = 100 * time.Millisecond
	}
	if c.PollLimit == 0 {
		c.PollLimit = 100
	}
	if c.StaleAfter == 0 {
		c.StaleAfter = 20 * time.Second
	}
	if c.Platform == "" {
		c.Platform = "web"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Clock == nil {
		c.Clock = clock.System
	}
}

// resolveToken fills Token from the keychain if it is empty.
func (c *Config) resolveToken() error {
	if c.Token != "" || c.KeyringAccount == "" {
		return nil
	}
	service := c.KeyringService
	if service == "" {
		service = "rubikit"
	}
	token, err := keyring.Get(service, c.KeyringAccount)
	if err != nil {
		return errors.Wrapf(err, "read token from keychain %s/%s", service, c.KeyringAccount)
	}
	c.Token = token
	return nil
}

func (c *Config) validate() error {
	if c.Token == "" {
		return ErrMissingToken
	}
	if c.PollLimit < 0 {
		return errors.Errorf("rubikit: poll limit must be positive, got %d", c.PollLimit)
	}
	if c.MaxConcurrentDispatch < 0 {
		return errors.Errorf("rubikit: max concurrent dispatch must not be negative, got %d", c.MaxConcurrentDispatch)
	}
	return nil
}

// maskedToken returns the token prefix safe for logs.
func (c *Config) maskedToken() string {
	if len(c.Token) <= 8 {
		return c.Token[:len(c.Token)/2] + "***"
	}
	return c.Token[:8] + "***"
}

// zapLogger creates a zap logger matching the Verbose setting.
func (c *Config) zapLogger() *zap.Logger {
	var level zapcore.Level
	if c.Verbose {
		level = zapcore.DebugLevel
	} else {
		level = zapcore.InfoLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.Named("rubika")
}

package rubikit

import (
	"testing"
	"time"

	"github.com/zalando/go-keyring"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("RUBIKA_TOKEN", "env-token-123456")
	t.Setenv("RUBIKA_BASE_URL", "http://localhost:9000/v3")
	t.Setenv("RUBIKA_POLL_INTERVAL", "250ms")
	t.Setenv("RUBIKA_POLL_LIMIT", "20")
	t.Setenv("RUBIKA_MAX_CONCURRENT_DISPATCH", "4")
	t.Setenv("RUBIKA_SYNC_COMMANDS", "true")
	t.Setenv("RUBIKA_VERBOSE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Token != "env-token-123456" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.BaseURL != "http://localhost:9000/v3" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v, want 250ms", cfg.PollInterval)
	}
	if cfg.PollLimit != 20 {
		t.Errorf("PollLimit = %d, want 20", cfg.PollLimit)
	}
	if cfg.MaxConcurrentDispatch != 4 {
		t.Errorf("MaxConcurrentDispatch = %d, want 4", cfg.MaxConcurrentDispatch)
	}
	if !cfg.SyncCommands || !cfg.Verbose {
		t.Errorf("SyncCommands = %v, Verbose = %v, want both true", cfg.SyncCommands, cfg.Verbose)
	}
	if cfg.KeyringService != "rubikit" {
		t.Errorf("KeyringService = %q, want %q", cfg.KeyringService, "rubikit")
	}
	if cfg.StaleAfter != 0 {
		t.Errorf("StaleAfter = %v, want zero before defaults", cfg.StaleAfter)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	t.Setenv("RUBIKA_POLL_INTERVAL", "soon")

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() accepted an invalid duration")
	}
}

func TestResolveTokenFromKeyring(t *testing.T) {
	keyring.MockInit()
	if err := keyring.Set("rubikit-test", "main", "keyring-token-42"); err != nil {
		t.Fatalf("keyring.Set() error = %v", err)
	}

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "explicit token wins",
			cfg:  Config{Token: "explicit", KeyringService: "rubikit-test", KeyringAccount: "main"},
			want: "explicit",
		},
		{
			name: "token from keyring",
			cfg:  Config{KeyringService: "rubikit-test", KeyringAccount: "main"},
			want: "keyring-token-42",
		},
		{
			name: "no account configured",
			cfg:  Config{KeyringService: "rubikit-test"},
			want: "",
		},
		{
			name:    "missing entry",
			cfg:     Config{KeyringService: "rubikit-test", KeyringAccount: "other"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.resolveToken()
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveToken() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Token != tt.want {
				t.Errorf("Token = %q, want %q", cfg.Token, tt.want)
			}
		})
	}
}

func TestMaskedToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"0123456789abcdef", "01234567***"},
		{"01234567", "0123***"},
		{"ab", "a***"},
	}

	for _, tt := range tests {
		cfg := Config{Token: tt.token}
		if got := cfg.maskedToken(); got != tt.want {
			t.Errorf("maskedToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

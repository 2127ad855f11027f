package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	if cfg.Polling.ConversationInterval != 1500*time.Millisecond {
		t.Errorf("conversation interval = %v, want 1.5s", cfg.Polling.ConversationInterval)
	}
	if cfg.Polling.MessageInterval != 750*time.Millisecond {
		t.Errorf("message interval = %v, want 750ms", cfg.Polling.MessageInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "base url without scheme",
			mutate:  func(c *Config) { c.API.BaseURL = "api.bridgette.app" },
			wantErr: true,
		},
		{
			name:    "conversation interval too small",
			mutate:  func(c *Config) { c.Polling.ConversationInterval = 50 * time.Millisecond },
			wantErr: true,
		},
		{
			name:    "message interval too small",
			mutate:  func(c *Config) { c.Polling.MessageInterval = 10 * time.Millisecond },
			wantErr: true,
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.TUI.Theme = "neon" },
			wantErr: true,
		},
		{
			name:    "high contrast theme",
			mutate:  func(c *Config) { c.TUI.Theme = "high-contrast" },
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCachePathFallsBackToDataDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Global.DataDir = "/tmp/bridgette-data"
	cfg.Cache.Path = ""

	if got := cfg.CachePath(); got != filepath.Join("/tmp/bridgette-data", "snapshot.db") {
		t.Errorf("CachePath() = %q", got)
	}

	cfg.Cache.Path = "/var/cache/bridgette.db"
	if got := cfg.CachePath(); got != "/var/cache/bridgette.db" {
		t.Errorf("explicit CachePath() = %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir in test environment")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/cache.db", filepath.Join(home, "cache.db")},
		{"/absolute/path", "/absolute/path"},
	}

	for _, tt := range tests {
		if got := expandTilde(tt.in); got != tt.want {
			t.Errorf("expandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
api:
  base_url: https://api.example.com
polling:
  conversation_interval: 2s
tui:
  theme: high-contrast
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.Polling.ConversationInterval != 2*time.Second {
		t.Errorf("conversation interval = %v", cfg.Polling.ConversationInterval)
	}
	// Unset keys keep their defaults
	if cfg.Polling.MessageInterval != 750*time.Millisecond {
		t.Errorf("message interval = %v, want default", cfg.Polling.MessageInterval)
	}
	if cfg.TUI.Theme != "high-contrast" {
		t.Errorf("theme = %q", cfg.TUI.Theme)
	}
}

func TestLoadFromMissingFileFails(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

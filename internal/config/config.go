// Package config handles Bridgette configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration structure for Bridgette.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// API settings for the coordination backend
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Polling settings for the messaging views
	Polling PollingConfig `yaml:"polling" mapstructure:"polling"`

	// Cache settings for the offline snapshot store
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// GlobalConfig contains global Bridgette settings.
type GlobalConfig struct {
	// DataDir is where Bridgette stores its data (default: ~/.local/share/bridgette).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config files are stored (default: ~/.config/bridgette).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// APIConfig contains backend API settings.
type APIConfig struct {
	// BaseURL is the backend root, e.g. https://api.bridgette.app.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout is the per-request timeout.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// PollingConfig contains refresh intervals for the messaging views.
type PollingConfig struct {
	// ConversationInterval is how often the conversation list refreshes.
	ConversationInterval time.Duration `yaml:"conversation_interval" mapstructure:"conversation_interval"`

	// MessageInterval is how often the open message stream refreshes.
	MessageInterval time.Duration `yaml:"message_interval" mapstructure:"message_interval"`
}

// CacheConfig contains offline snapshot settings.
type CacheConfig struct {
	// Enabled toggles snapshot persistence.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite snapshot file path.
	Path string `yaml:"path" mapstructure:"path"`

	// BusyTimeoutMs is how long to wait for a locked database (milliseconds).
	BusyTimeoutMs int `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// ShowTimestamps shows timestamps next to messages.
	ShowTimestamps bool `yaml:"show_timestamps" mapstructure:"show_timestamps"`

	// CompactMode uses a more compact layout.
	CompactMode bool `yaml:"compact_mode" mapstructure:"compact_mode"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Global: GlobalConfig{
			DataDir:   filepath.Join(homeDir, ".local", "share", "bridgette"),
			ConfigDir: filepath.Join(homeDir, ".config", "bridgette"),
		},
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 10 * time.Second,
		},
		Polling: PollingConfig{
			ConversationInterval: 1500 * time.Millisecond,
			MessageInterval:      750 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled:       true,
			Path:          "", // Will be set to DataDir/snapshot.db
			BusyTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		TUI: TUIConfig{
			Theme:          "default",
			ShowTimestamps: true,
			CompactMode:    false,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api.base_url must start with http:// or https://")
	}

	if c.API.Timeout < time.Second {
		return fmt.Errorf("api.timeout must be at least 1s")
	}

	if c.Polling.ConversationInterval < 100*time.Millisecond {
		return fmt.Errorf("polling.conversation_interval must be at least 100ms")
	}
	if c.Polling.MessageInterval < 100*time.Millisecond {
		return fmt.Errorf("polling.message_interval must be at least 100ms")
	}

	switch c.TUI.Theme {
	case "default", "high-contrast":
		// ok
	default:
		return fmt.Errorf("tui.theme must be one of default, high-contrast")
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Global.DataDir,
		c.Global.ConfigDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// CachePath returns the full snapshot database path.
func (c *Config) CachePath() string {
	if c.Cache.Path != "" {
		return c.Cache.Path
	}
	return filepath.Join(c.Global.DataDir, "snapshot.db")
}

// SessionPath returns the path of the persisted session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.Global.ConfigDir, "session.json")
}

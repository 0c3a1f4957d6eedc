package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/ramonehamilton/commander-analyzer/internal/version"
)

// Environment variables that override the config file.
const (
	EnvDBPath   = "ANALYZER_DB_PATH"
	EnvLogLevel = "ANALYZER_LOG_LEVEL"
	EnvAPIPort  = "ANALYZER_API_PORT"
	EnvComboURL = "ANALYZER_COMBO_URL"
	EnvWorkers  = "ANALYZER_WORKERS"
)

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Scryfall ScryfallConfig `toml:"scryfall"`
	Build    BuildConfig    `toml:"build"`
	Combos   ComboConfig    `toml:"combos"`
	Log      LogConfig      `toml:"log"`
	API      APIConfig      `toml:"api"`
	Watch    WatchConfig    `toml:"watch"`
}

// DatabaseConfig contains the local card database settings.
type DatabaseConfig struct {
	Path        string `toml:"path"`         // SQLite file
	AutoMigrate bool   `toml:"auto_migrate"` // Apply migrations on open
}

// ScryfallConfig contains remote card lookup settings.
type ScryfallConfig struct {
	BaseURL       string `toml:"base_url"`
	UserAgent     string `toml:"user_agent"`
	RateLimit     string `toml:"rate_limit"`     // Minimum delay between requests (e.g., "100ms")
	FuzzyFallback bool   `toml:"fuzzy_fallback"` // Retry misses with a fuzzy query
}

// BuildConfig contains deck build settings.
type BuildConfig struct {
	Workers         int    `toml:"workers"`           // Parallel card lookups
	DefaultDecksDir string `toml:"default_decks_dir"` // Folder used by register mode
}

// ComboConfig contains combo table settings.
type ComboConfig struct {
	Enabled         bool   `toml:"enabled"`
	SourceURL       string `toml:"source_url"`       // Sheet URL, CSV URL or file path
	RefreshInterval string `toml:"refresh_interval"` // Cache age before refetch (e.g., "24h")
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// APIConfig contains HTTP server settings.
type APIConfig struct {
	Port int `toml:"port"`
}

// WatchConfig contains decklist folder watching settings.
type WatchConfig struct {
	Dir      string `toml:"dir"`
	Debounce string `toml:"debounce"` // Quiet period before rebuilding (e.g., "500ms")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:        filepath.Join(dataDir(), "cards.db"),
			AutoMigrate: true,
		},
		Scryfall: ScryfallConfig{
			BaseURL:       "https://api.scryfall.com",
			UserAgent:     version.UserAgent(),
			RateLimit:     "100ms",
			FuzzyFallback: true,
		},
		Build: BuildConfig{
			Workers:         4,
			DefaultDecksDir: "decks",
		},
		Combos: ComboConfig{
			Enabled:         false,
			SourceURL:       "",
			RefreshInterval: "24h",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		API: APIConfig{
			Port: 8080,
		},
		Watch: WatchConfig{
			Dir:      "decks",
			Debounce: "500ms",
		},
	}
}

func dataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".commander-analyzer"
	}
	return filepath.Join(homeDir, ".commander-analyzer")
}

// DefaultPath returns the path of the configuration file in the user's
// home directory.
func DefaultPath() string {
	return filepath.Join(dataDir(), "config.toml")
}

// Load loads the configuration from path, or from DefaultPath when path is
// empty. A missing file yields the default config. Environment overrides
// are applied last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv loads a .env file from the working directory, if present, and
// applies the ANALYZER_* overrides. Variables already set in the
// environment win over .env entries.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := strings.TrimSpace(os.Getenv(EnvDBPath)); v != "" {
		c.Database.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvComboURL)); v != "" {
		c.Combos.SourceURL = v
		c.Combos.Enabled = true
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIPort)); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPIPort, v, err)
		}
		c.API.Port = port
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvWorkers, v, err)
		}
		c.Build.Workers = n
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if _, err := time.ParseDuration(c.Scryfall.RateLimit); err != nil {
		return fmt.Errorf("invalid rate limit %q: %w", c.Scryfall.RateLimit, err)
	}

	if _, err := time.ParseDuration(c.Combos.RefreshInterval); err != nil {
		return fmt.Errorf("invalid combo refresh interval %q: %w", c.Combos.RefreshInterval, err)
	}

	if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
		return fmt.Errorf("invalid watch debounce %q: %w", c.Watch.Debounce, err)
	}

	if c.Build.Workers < 1 {
		return fmt.Errorf("workers must be at least 1: %d", c.Build.Workers)
	}

	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("api port out of range: %d", c.API.Port)
	}

	if c.Combos.Enabled && c.Combos.SourceURL == "" {
		return fmt.Errorf("combos enabled without a source url")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}

	return nil
}

// GetRateLimit returns the Scryfall request spacing as a duration.
func (c *Config) GetRateLimit() (time.Duration, error) {
	return time.ParseDuration(c.Scryfall.RateLimit)
}

// GetComboRefreshInterval returns the combo cache age limit as a duration.
func (c *Config) GetComboRefreshInterval() (time.Duration, error) {
	return time.ParseDuration(c.Combos.RefreshInterval)
}

// GetWatchDebounce returns the watch debounce as a duration.
func (c *Config) GetWatchDebounce() (time.Duration, error) {
	return time.ParseDuration(c.Watch.Debounce)
}

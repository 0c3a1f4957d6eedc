package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v, want nil", err)
	}
	if cfg.Build.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Build.Workers)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("AutoMigrate = false, want true")
	}

	interval, err := cfg.GetComboRefreshInterval()
	if err != nil || interval != 24*time.Hour {
		t.Errorf("GetComboRefreshInterval() = %v, %v; want 24h", interval, err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Port != DefaultConfig().API.Port {
		t.Errorf("Port = %d, want default", cfg.API.Port)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.Database.Path = "/tmp/cards.db"
	cfg.Build.Workers = 8
	cfg.Combos.Enabled = true
	cfg.Combos.SourceURL = "combos.csv"
	cfg.Log.Format = "json"

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[api]\nport = 9090\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.Scryfall.BaseURL != "https://api.scryfall.com" {
		t.Errorf("BaseURL = %q, want default", cfg.Scryfall.BaseURL)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nport ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDBPath, "/data/cards.db")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAPIPort, "7000")
	t.Setenv(EnvComboURL, "https://example.com/combos.csv")
	t.Setenv(EnvWorkers, "2")

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Database.Path != "/data/cards.db" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
	if cfg.API.Port != 7000 {
		t.Errorf("API.Port = %d", cfg.API.Port)
	}
	if !cfg.Combos.Enabled || cfg.Combos.SourceURL != "https://example.com/combos.csv" {
		t.Errorf("Combos = %+v", cfg.Combos)
	}
	if cfg.Build.Workers != 2 {
		t.Errorf("Build.Workers = %d", cfg.Build.Workers)
	}
}

func TestApplyEnv_InvalidNumber(t *testing.T) {
	t.Setenv(EnvWorkers, "many")
	if err := DefaultConfig().ApplyEnv(); err == nil {
		t.Error("ApplyEnv() error = nil, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"bad rate limit", func(c *Config) { c.Scryfall.RateLimit = "fast" }},
		{"bad refresh interval", func(c *Config) { c.Combos.RefreshInterval = "daily" }},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "" }},
		{"zero workers", func(c *Config) { c.Build.Workers = 0 }},
		{"port zero", func(c *Config) { c.API.Port = 0 }},
		{"port too high", func(c *Config) { c.API.Port = 70000 }},
		{"combos without source", func(c *Config) { c.Combos.Enabled = true }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

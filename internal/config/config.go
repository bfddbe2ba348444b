// Package config provides runtime configuration for budgetable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all budgetable configuration.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	PocketBase PocketBaseConfig `toml:"pocketbase"`
	Store      StoreConfig      `toml:"store"`
	Client     ClientConfig     `toml:"client"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// ServerConfig holds HTTP API server settings.
type ServerConfig struct {
	Addr       string `toml:"addr"`
	Collection string `toml:"collection"`
}

// PocketBaseConfig holds the remote record-store settings.
// Email and Password are usually supplied through the EMAIL and PASSWORD
// environment variables rather than written to disk.
type PocketBaseConfig struct {
	URL      string `toml:"url,omitempty"`
	Email    string `toml:"email,omitempty"`
	Password string `toml:"password,omitempty"`
}

// StoreConfig selects the record-store backend for serve.
type StoreConfig struct {
	Backend string `toml:"backend"` // "pocketbase" or "sqlite"
	DBPath  string `toml:"db_path,omitempty"`
}

// ClientConfig holds settings for the TUI client.
type ClientConfig struct {
	BaseURL string `toml:"base_url"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultCollection is the collection name used when no override is set.
const DefaultCollection = "budgetable"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:       "127.0.0.1:8090",
			Collection: DefaultCollection,
		},
		Store: StoreConfig{
			Backend: "pocketbase",
		},
		Client: ClientConfig{
			BaseURL: "http://127.0.0.1:8090",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "budgetable")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "budgetable")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// GetEmail returns the service-account email from env var or config, in
// that order.
func GetEmail(cfg Config) string {
	if v := os.Getenv("EMAIL"); v != "" {
		return v
	}
	return cfg.PocketBase.Email
}

// GetPassword returns the service-account password from env var or config,
// in that order.
func GetPassword(cfg Config) string {
	if v := os.Getenv("PASSWORD"); v != "" {
		return v
	}
	return cfg.PocketBase.Password
}

// GetCollection returns the collection name from env var or config, in that
// order, falling back to the default.
func GetCollection(cfg Config) string {
	if v := os.Getenv("BUDGETABLE_COLLECTION"); v != "" {
		return v
	}
	if cfg.Server.Collection != "" {
		return cfg.Server.Collection
	}
	return DefaultCollection
}

// GetPocketBaseURL returns the remote store URL from env var or config, in
// that order.
func GetPocketBaseURL(cfg Config) string {
	if v := os.Getenv("BUDGETABLE_URL"); v != "" {
		return v
	}
	return cfg.PocketBase.URL
}

// Package daemon manages Momentum configuration and the data directory.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all Momentum configuration.
type Config struct {
	Data   DataConfig   `toml:"data"`
	API    APIConfig    `toml:"api"`
	Gamify GamifyConfig `toml:"gamify"`
	Sync   SyncConfig   `toml:"sync"`
}

// DataConfig controls local storage.
type DataConfig struct {
	Dir string `toml:"dir"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// GamifyConfig controls the gamification engine.
type GamifyConfig struct {
	Timezone        string `toml:"timezone"`          // IANA name, "" = local
	EarlyCutoffHour int    `toml:"early_cutoff_hour"` // completions before this hour are early-bird
	DateWindowDays  int    `toml:"date_window_days"`  // rolling cap for per-day bookkeeping
}

// SyncConfig controls the offline replay coordinator.
type SyncConfig struct {
	MaxRetries     int `toml:"max_retries"`
	TimeoutSeconds int `toml:"timeout_seconds"`
	PurgeAgeDays   int `toml:"purge_age_days"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	home := momentumHome()
	return Config{
		Data: DataConfig{
			Dir: home,
		},
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    4271,
			Metrics: false,
		},
		Gamify: GamifyConfig{
			Timezone:        "",
			EarlyCutoffHour: 9,
			DateWindowDays:  400,
		},
		Sync: SyncConfig{
			MaxRetries:     3,
			TimeoutSeconds: 30,
			PurgeAgeDays:   14,
		},
	}
}

// LoadConfig reads config from ~/.momentum/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(momentumHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// SaveConfig writes the config to ~/.momentum/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(momentumHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Gamify.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Gamify.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Gamify.Timezone, err)
	}
	return loc, nil
}

// SyncTimeout returns the per-request replay timeout.
func (c Config) SyncTimeout() time.Duration {
	return time.Duration(c.Sync.TimeoutSeconds) * time.Second
}

// PurgeAge returns the queue purge cutoff as a duration.
func (c Config) PurgeAge() time.Duration {
	return time.Duration(c.Sync.PurgeAgeDays) * 24 * time.Hour
}

// momentumHome returns the Momentum data directory.
func momentumHome() string {
	if env := os.Getenv("MOMENTUM_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".momentum")
}

// MomentumHome is exported for use by other packages.
func MomentumHome() string {
	return momentumHome()
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidHistory is returned when max_history cannot size a history buffer.
var ErrInvalidHistory = errors.New("max_history must be greater than zero")

type Config struct {
	Theme           string        `toml:"theme"`
	DefaultIdentity string        `toml:"default_identity"`
	PollInterval    time.Duration `toml:"-"`
	PollIntervalStr string        `toml:"poll_interval"`
	MaxHistory      int           `toml:"max_history"`
	// StaleAfter is how old the newest sample may get before an interface
	// is flagged stale. Zero means three poll intervals.
	StaleAfter    time.Duration `toml:"-"`
	StaleAfterStr string        `toml:"stale_after,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:           "solarized-dark",
		PollInterval:    10 * time.Second,
		PollIntervalStr: "10s",
		MaxHistory:      360,
	}
}

// Validate reports settings that would break polling.
func (c *Config) Validate() error {
	if c.MaxHistory <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidHistory, c.MaxHistory)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.StaleAfter < 0 {
		return fmt.Errorf("stale_after must not be negative, got %s", c.StaleAfter)
	}
	return nil
}

// LoadConfig reads path over the defaults. A missing file yields defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.PollIntervalStr != "" {
		d, err := time.ParseDuration(cfg.PollIntervalStr)
		if err != nil {
			return nil, fmt.Errorf("poll_interval: %w", err)
		}
		cfg.PollInterval = d
	}
	if cfg.StaleAfterStr != "" {
		d, err := time.ParseDuration(cfg.StaleAfterStr)
		if err != nil {
			return nil, fmt.Errorf("stale_after: %w", err)
		}
		cfg.StaleAfter = d
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(cfg *Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.PollIntervalStr = cfg.PollInterval.String()
	cfg.StaleAfterStr = ""
	if cfg.StaleAfter > 0 {
		cfg.StaleAfterStr = cfg.StaleAfter.String()
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

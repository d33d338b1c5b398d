package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if CALENDAR_CONFIG is set
//  3. env (prefix CALENDAR_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("CALENDAR_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: CALENDAR_ADDR, CALENDAR_DATA_DIR, ...
	// Map env keys like CALENDAR_DATA_DIR -> data_dir (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CALENDAR_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "calendar_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot start with.
func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.DataDir == "" {
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("%w: session_ttl must be positive", ErrInvalidConfig)
	}
	if c.SnapshotEnabled {
		if c.SnapshotWidth <= 0 || c.SnapshotHeight <= 0 {
			return fmt.Errorf("%w: snapshot viewport must be positive", ErrInvalidConfig)
		}
		if c.SnapshotTimeout <= 0 {
			return fmt.Errorf("%w: snapshot_timeout must be positive", ErrInvalidConfig)
		}
		if c.SnapshotOutput == "" {
			return fmt.Errorf("%w: snapshot_output must not be empty", ErrInvalidConfig)
		}
		if c.SnapshotQueueSize <= 0 {
			return fmt.Errorf("%w: snapshot_queue_size must be positive", ErrInvalidConfig)
		}
	}
	return nil
}

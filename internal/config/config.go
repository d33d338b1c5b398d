// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and environment on top.
// - External errors must be wrapped via this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BaseURL is the externally reachable URL of this service. Used by the
	// snapshot capturer to navigate to the calendar page. Derived from Addr
	// when empty.
	BaseURL string `koanf:"base_url"`

	// DataDir is the directory the persistence backend writes under.
	DataDir string `koanf:"data_dir"`

	// SessionTTL is how long an idle surface session survives before the
	// reaper detaches it.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// SnapshotEnabled turns the page capture pipeline on.
	SnapshotEnabled bool `koanf:"snapshot_enabled"`

	// SnapshotCron optionally schedules periodic captures, standard cron
	// syntax. Empty means on-demand only.
	SnapshotCron string `koanf:"snapshot_cron"`

	// SnapshotOutput is the PNG path captures are written to.
	SnapshotOutput string `koanf:"snapshot_output"`

	// SnapshotWidth and SnapshotHeight set the emulated viewport.
	SnapshotWidth  int `koanf:"snapshot_width"`
	SnapshotHeight int `koanf:"snapshot_height"`

	// SnapshotTimeout bounds a single capture.
	SnapshotTimeout time.Duration `koanf:"snapshot_timeout"`

	// SnapshotQueueSize bounds the pending capture job queue.
	SnapshotQueueSize int `koanf:"snapshot_queue_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:          "info",
		Addr:              ":8080",
		BaseURL:           "",
		DataDir:           "data",
		SessionTTL:        30 * time.Minute,
		SnapshotEnabled:   false,
		SnapshotCron:      "",
		SnapshotOutput:    "calendar.png",
		SnapshotWidth:     1200,
		SnapshotHeight:    825,
		SnapshotTimeout:   30 * time.Second,
		SnapshotQueueSize: 4,
	}
	return c
}

// ResolveBaseURL returns BaseURL, or one derived from Addr when unset.
// A bare ":8080" listen address resolves to "http://localhost:8080".
func (c *Config) ResolveBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	addr := c.Addr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return fmt.Sprintf("http://%s", addr)
}

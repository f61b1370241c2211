// Package config defines the beacon process configuration and its loader.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and BEACON_* env vars.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address for /healthz and /metrics.
	Addr string `koanf:"addr"`

	// WriteKey is the Segment source write key. Empty disables tracking.
	WriteKey string `koanf:"write_key"`

	// Active toggles tracking even when a write key is configured.
	Active bool `koanf:"active"`

	// Endpoint overrides the Segment API endpoint (e.g. a regional host or proxy).
	Endpoint string `koanf:"endpoint"`

	// BatchSize is the number of messages the client buffers before flushing.
	BatchSize int `koanf:"batch_size"`

	// FlushIntervalMS bounds how long a message may wait in the client buffer.
	FlushIntervalMS int `koanf:"flush_interval_ms"`

	// InfraMetricsIntervalMS sets how often infra_metrics is reported. 0 disables it.
	InfraMetricsIntervalMS int `koanf:"infra_metrics_interval_ms"`

	// Verbose makes the Segment client log every batch it sends.
	Verbose bool `koanf:"verbose"`

	// AppName is reported in the default event context.
	AppName string `koanf:"app_name"`
}

// New creates a Config populated with defaults. The context is reserved for
// future sources and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9464",
		Active:                 true,
		BatchSize:              250,
		FlushIntervalMS:        5_000,
		InfraMetricsIntervalMS: 30 * 60 * 1000,
		AppName:                "beacon",
	}
}

// FlushInterval returns FlushIntervalMS as a duration.
func (c *Config) FlushInterval() time.Duration {
	return time.Duration(c.FlushIntervalMS) * time.Millisecond
}

// InfraMetricsInterval returns InfraMetricsIntervalMS as a duration.
func (c *Config) InfraMetricsInterval() time.Duration {
	return time.Duration(c.InfraMetricsIntervalMS) * time.Millisecond
}

// TrackingEnabled reports whether a Segment client should be built.
func (c *Config) TrackingEnabled() bool {
	return c.Active && strings.TrimSpace(c.WriteKey) != ""
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BatchSize < 0:
		return fmt.Errorf("%w: batch_size must not be negative", ErrInvalidConfig)
	case c.FlushIntervalMS < 0:
		return fmt.Errorf("%w: flush_interval_ms must not be negative", ErrInvalidConfig)
	case c.InfraMetricsIntervalMS < 0:
		return fmt.Errorf("%w: infra_metrics_interval_ms must not be negative", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

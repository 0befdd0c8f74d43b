// Package config loads agenda settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. AGENDA_DB_PATH.
const Prefix = "AGENDA"

// Config holds the runtime settings.
type Config struct {
	// DBPath is the SQLite file. Parent directories are created on start.
	DBPath string `envconfig:"DB_PATH" default:"./data/agenda.db"`

	// Logging. The terminal belongs to the UI, so logs go to a file.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE" default:"./data/agenda.log"`

	// BannerDuration is how long the "saved" notice stays on screen.
	BannerDuration time.Duration `envconfig:"BANNER_DURATION" default:"3s"`

	// Background mutation workers.
	Workers   int `envconfig:"WORKERS" default:"2"`
	QueueSize int `envconfig:"QUEUE_SIZE" default:"64"`

	// MetricsAddr enables a Prometheus /metrics listener when non-empty.
	MetricsAddr string `envconfig:"METRICS_ADDR" default:""`
}

// New creates a Config by parsing AGENDA_* environment variables. Values are
// not validated here so that flag overrides can replace them first; callers
// run Validate once the final values are in place.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.BannerDuration <= 0 {
		return fmt.Errorf("BANNER_DURATION must be positive, got %s", c.BannerDuration)
	}
	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("QUEUE_SIZE must be at least 1, got %d", c.QueueSize)
	}
	return nil
}

// Level returns the parsed log level. Validate has already rejected bad values.
func (c *Config) Level() slog.Level {
	level, _ := ParseLevel(c.LogLevel)
	return level
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unsupported LOG_LEVEL: %s", s)
	}
}

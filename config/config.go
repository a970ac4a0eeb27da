package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/exp/slog"
)

// Config is the server configuration, read from a TOML file.
type Config struct {
	// LogFile is the path that logs are written to.
	LogFile string `toml:"log_file"`
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log_level"`
	// ConcurrencyLimit is the number of requests handled at once.
	ConcurrencyLimit int64 `toml:"concurrency_limit"`
	// AtomicChanges discards every edit of a change notification if any
	// one of them can't be applied.
	AtomicChanges bool `toml:"atomic_changes"`
}

func Default() Config {
	return Config{
		LogFile:          "textsync.log",
		LogLevel:         "info",
		ConcurrencyLimit: 4,
		AtomicChanges:    false,
	}
}

// Load reads the configuration at path. Settings missing from the file keep
// their default values. If path is empty or the file doesn't exist, the
// defaults are returned.
func Load(path string) (c Config, err error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return c, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	c, err = Parse(data)
	if err != nil {
		return c, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return c, nil
}

// Parse reads TOML configuration over the defaults.
func Parse(data []byte) (c Config, err error) {
	c = Default()
	if err = toml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.LogFile == "" {
		return errors.New("log_file must not be empty")
	}
	if c.ConcurrencyLimit < 1 {
		return fmt.Errorf("concurrency_limit must be at least 1, got %d", c.ConcurrencyLimit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns LogLevel as a slog.Level.
func (c Config) Level() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
}

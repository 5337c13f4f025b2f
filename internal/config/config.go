// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration values for the work log.
type Config struct {
	// DataDir holds the database and the log file. Defaults to
	// $XDG_DATA_HOME/worklog, or ~/.local/share/worklog.
	DataDir string

	// DBFile is the database file name inside DataDir. Defaults to "worklog.db".
	DBFile string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from environment variables and returns a Config.
// Values are not validated here; callers apply flag overrides first and then
// call Validate.
func Load() (Config, error) {
	cfg := Config{
		DataDir:  os.Getenv("WORKLOG_DATA_DIR"),
		DBFile:   getEnv("WORKLOG_DB_FILE", "worklog.db"),
		LogLevel: getEnv("WORKLOG_LOG_LEVEL", "info"),
	}

	if cfg.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// Validate checks values that may also have been set from flags.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.DBFile == "" || strings.ContainsRune(c.DBFile, filepath.Separator) {
		return fmt.Errorf("invalid database file name %q", c.DBFile)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// DBPath returns the full path of the database file.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// LogPath returns the full path of the log file.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "worklog.log")
}

// defaultDataDir uses the XDG data directory or falls back to the home directory
func defaultDataDir() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "worklog"), nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

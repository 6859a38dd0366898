package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the configuration of one crlserver process.
type Config struct {
	// GamesDir is the flat directory of game descriptor files.
	GamesDir string
	// PlaygroundDir is the base of the sharded player directories.
	PlaygroundDir string
	// MiscDir holds the template files copied into new playgrounds.
	MiscDir string

	LogLevel  string
	LogFormat string

	// MinRows and MinCols are the smallest terminal the games accept.
	MinRows int
	MinCols int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GamesDir:      "/usr/local/share/crlserver/games",
		PlaygroundDir: "/var/crlserver/playground",
		MiscDir:       "/usr/local/share/crlserver/misc",
		LogLevel:      "info",
		LogFormat:     "text",
		MinRows:       24,
		MinCols:       80,
	}
}

// Validate checks that every field holds a usable value.
func (c *Config) Validate() error {
	var errs []string
	if c.GamesDir == "" {
		errs = append(errs, "games_dir must not be empty")
	}
	if c.PlaygroundDir == "" {
		errs = append(errs, "playground_dir must not be empty")
	}
	if c.MiscDir == "" {
		errs = append(errs, "misc_dir must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q: must be 'text' or 'json'", c.LogFormat))
	}
	if c.MinRows <= 0 || c.MinCols <= 0 {
		errs = append(errs, "terminal minimums must be positive")
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

package app

import "errors"

// Config holds the options an App is started with. Empty fields fall back to
// the server configuration file, the environment and the built-in defaults,
// in that order.
type Config struct {
	ConfigPath string // HCL server configuration

	GamesDir      string
	PlaygroundDir string
	MiscDir       string

	LogFormat string
	LogLevel  string

	Player   string
	NoScreen bool
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Player == "" {
		return nil, errors.New("Player is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

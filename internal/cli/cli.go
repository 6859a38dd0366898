package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/crlserver/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("crlserver", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
crlserver - A terminal multi-game server.

Usage:
  crlserver [options] [PLAYER]

Arguments:
  PLAYER
    Name of the player to log in. Same as -player.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the HCL server configuration file.")
	playerFlag := flagSet.String("player", "", "Name of the player to log in.")
	gamesFlag := flagSet.String("games", "", "Directory of game descriptor files.")
	playgroundFlag := flagSet.String("playground", "", "Base directory of player playgrounds.")
	miscFlag := flagSet.String("misc", "", "Directory of template files copied into new playgrounds.")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	noScreenFlag := flagSet.Bool("no-screen", false, "Print the game list instead of opening the terminal.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	player := *playerFlag
	if player == "" && flagSet.NArg() > 0 {
		player = flagSet.Arg(0)
	}
	slog.Debug("Player determined.", "player", player)

	if player == "" {
		slog.Debug("No player provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "", "text", "json":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:    *configFlag,
		GamesDir:      *gamesFlag,
		PlaygroundDir: *playgroundFlag,
		MiscDir:       *miscFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
		Player:        player,
		NoScreen:      *noScreenFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

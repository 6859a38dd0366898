package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/specialistvlad/crlserver/internal/config"
	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/specialistvlad/crlserver/internal/playground"
	"github.com/specialistvlad/crlserver/internal/registry"
	"github.com/specialistvlad/crlserver/internal/screen"
	"github.com/specialistvlad/crlserver/internal/session"
	"github.com/specialistvlad/crlserver/internal/signals"
)

// ScreenOpener opens the player's terminal with the given minimum size.
type ScreenOpener func(minRows, minCols int) (*screen.Screen, error)

// Option customizes an App.
type Option func(*App)

// WithExit replaces os.Exit as the final step of Fatal.
func WithExit(exit func(code int)) Option {
	return func(a *App) { a.exit = exit }
}

// WithLogWriter sends log output to w instead of the App's output writer.
func WithLogWriter(w io.Writer) Option {
	return func(a *App) { a.logW = w }
}

// WithScreenOpener replaces the real terminal.
func WithScreenOpener(open ScreenOpener) Option {
	return func(a *App) { a.openScreen = open }
}

// WithSignals installs the process signal policy when the App runs.
func WithSignals() Option {
	return func(a *App) { a.heedSignals = true }
}

// App encapsulates the server's dependencies, configuration, and lifecycle.
type App struct {
	ctx      context.Context
	outW     io.Writer
	logW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *config.Config

	registry    *registry.Registry
	session     *session.Context
	provisioner *playground.Provisioner
	screen      *screen.Screen
	signals     *signals.Handler

	exit        func(code int)
	openScreen  ScreenOpener
	heedSignals bool

	// mu guards the fields above against the signal goroutine, which may
	// run Fatal while Run is still starting up.
	mu     sync.Mutex
	closed bool
}

// NewApp is the constructor for the server. It loads the server
// configuration and applies the command-line overrides from appConfig. A
// configuration that cannot be loaded is a fatal startup error and panics.
func NewApp(outW io.Writer, appConfig *Config, opts ...Option) *App {
	a := &App{
		outW:       outW,
		logW:       outW,
		config:     appConfig,
		exit:       os.Exit,
		openScreen: screen.OpenTerminal,
	}
	for _, opt := range opts {
		opt(a)
	}

	// Bootstrap logger until the configured level and format are known.
	a.logger = newLogger(appConfig.LogLevel, appConfig.LogFormat, a.logW)
	a.ctx = ctxlog.WithLogger(context.Background(), a.logger)

	settings, err := config.Load(a.ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	applyOverrides(settings, appConfig)
	if err := settings.Validate(); err != nil {
		panic(err)
	}
	a.settings = settings

	a.logger = newLogger(settings.LogLevel, settings.LogFormat, a.logW)
	a.ctx = ctxlog.WithLogger(context.Background(), a.logger)
	a.logger.Debug("Logger configured successfully.")

	a.session = session.New(settings.PlaygroundDir)
	a.provisioner = playground.New(settings.PlaygroundDir, settings.MiscDir)
	return a
}

// applyOverrides copies every non-empty command-line value over the loaded
// settings.
func applyOverrides(settings *config.Config, appConfig *Config) {
	for _, o := range []struct {
		dst *string
		src string
	}{
		{&settings.GamesDir, appConfig.GamesDir},
		{&settings.PlaygroundDir, appConfig.PlaygroundDir},
		{&settings.MiscDir, appConfig.MiscDir},
		{&settings.LogLevel, appConfig.LogLevel},
		{&settings.LogFormat, appConfig.LogFormat},
	} {
		if o.src != "" {
			*o.dst = o.src
		}
	}
}

// Context returns the App's base context, carrying its logger.
func (a *App) Context() context.Context { return a.ctx }

// Settings returns the effective server configuration.
func (a *App) Settings() *config.Config { return a.settings }

// Registry returns the game registry, nil before LoadGames.
func (a *App) Registry() *registry.Registry { return a.registry }

// Session returns the player session.
func (a *App) Session() *session.Context { return a.session }

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/specialistvlad/crlserver/internal/descriptor"
	"github.com/specialistvlad/crlserver/internal/playground"
	"github.com/specialistvlad/crlserver/internal/registry"
	"github.com/specialistvlad/crlserver/internal/session"
	"github.com/specialistvlad/crlserver/internal/signals"
)

// ErrFatal wraps every error that made the App terminate through Fatal.
var ErrFatal = errors.New("fatal error")

// ErrClosed is returned by Run when the App was closed while starting up,
// typically by a quit signal.
var ErrClosed = errors.New("app closed")

// Run performs the startup sequence: install signal handling, load the
// games, log the player in (provisioning the playground when needed), open
// the terminal and present the game list. The App is closed when Run
// returns.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer a.Close()

	if a.heedSignals {
		a.mu.Lock()
		a.signals = signals.Heed(func(os.Signal) { a.Fatal("Bye bye !") })
		a.mu.Unlock()
	}

	if err := a.step(func() error { return a.LoadGames(ctx) }); err != nil {
		return a.fatalErr(err)
	}

	if err := a.step(func() error { return a.Login(ctx, a.config.Player) }); err != nil {
		return fmt.Errorf("login failed for %q: %w", a.config.Player, err)
	}

	if !a.config.NoScreen {
		err := a.step(func() error {
			sc, err := a.openScreen(a.settings.MinRows, a.settings.MinCols)
			if err != nil {
				return err
			}
			a.screen = sc
			return nil
		})
		if err != nil {
			return a.fatalErr(err)
		}
	}

	if err := a.step(func() error { a.showGames(); return nil }); err != nil {
		return err
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

// step runs fn while holding the App lock, so that a concurrent Close or
// Fatal sees either none or all of its effects. It returns ErrClosed
// without running fn once the App is closed.
func (a *App) step(fn func() error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	return fn()
}

// LoadGames builds the game registry from the configured directory.
func (a *App) LoadGames(ctx context.Context) error {
	reg, err := registry.Load(ctx, a.settings.GamesDir)
	if err != nil {
		return err
	}
	reg.Validate(ctx)
	a.registry = reg
	return nil
}

// Login establishes the session for name. When the player has no playground
// yet it is provisioned and seeded, and the session is initialized again so
// that success always reflects a directory that exists now.
func (a *App) Login(ctx context.Context, name string) error {
	logger := ctxlog.FromContext(ctx)

	err := a.session.Init(name)
	if errors.Is(err, session.ErrNoHome) {
		logger.Info("Provisioning playground for new player.", "player", name)
		if perr := a.provisioner.EnsureDir(ctx, name); perr != nil {
			if errors.Is(perr, playground.ErrNotProvisioned) || errors.Is(perr, playground.ErrEmptyName) {
				return perr
			}
			logger.Warn("Playground seeding incomplete", "player", name, "error", perr)
		}
		err = a.session.Init(name)
	}
	if err != nil {
		return err
	}

	logger.Info("Session established.", "player", a.session.Name(), "home", a.session.Home())
	return nil
}

// showGames lists the registry on the terminal, or on the output writer when
// no terminal is open.
func (a *App) showGames() {
	games := a.registry.All()
	sort.SliceStable(games, func(i, j int) bool { return games[i].Title() < games[j].Title() })

	lines := []string{fmt.Sprintf("Welcome %s, %d game(s) available:", a.session.Name(), len(games))}
	for i, d := range games {
		lines = append(lines, formatGame(i+1, d))
	}

	if a.screen != nil {
		for y, line := range lines {
			a.screen.Print(0, y, line)
		}
		return
	}
	for _, line := range lines {
		fmt.Fprintln(a.outW, line)
	}
}

func formatGame(n int, d *descriptor.Descriptor) string {
	line := fmt.Sprintf("%2d) %s", n, d.Title())
	if v, ok := d.Get(descriptor.KeyVersion); ok {
		line += " " + v
	}
	if v, ok := d.Get(descriptor.KeyDescription); ok {
		line += " - " + v
	}
	return line
}

// Close tears the App down: terminal, registry, session and signal handling,
// with the quit signals masked for the duration. It is safe to call more
// than once and from more than one goroutine.
func (a *App) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closeLocked()
}

func (a *App) closeLocked() {
	if a.closed {
		return
	}
	a.closed = true

	if a.signals != nil {
		release := a.signals.Guard()
		defer func() {
			release()
			a.signals.Stop()
		}()
	}

	a.screen.Close()
	a.screen = nil
	if a.registry != nil {
		a.registry.Release()
	}
	a.session.Teardown()
	a.logger.Debug("App closed.")
}

// Fatal cleans up, reports msg and terminates the process. It does not
// return unless the exit function was replaced with WithExit.
func (a *App) Fatal(msg string) {
	a.mu.Lock()
	a.closeLocked()
	a.logger.Error("Fatal error, terminating.", "reason", msg)
	fmt.Fprintln(a.outW, msg)
	a.mu.Unlock()
	a.exit(1)
}

// fatalErr terminates through Fatal and returns the error for callers that
// replaced the exit function. An App already closed is not terminated again.
func (a *App) fatalErr(err error) error {
	if errors.Is(err, ErrClosed) {
		return err
	}
	a.Fatal(err.Error())
	return fmt.Errorf("%w: %w", ErrFatal, err)
}

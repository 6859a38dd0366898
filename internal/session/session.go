// Package session holds the identity of the player served by this process.
//
// A Context starts uninitialized. Init makes it active once the player's
// playground directory exists; Teardown, or a failed Init, returns it to the
// uninitialized state. There is one Context per process and it is passed
// explicitly to whatever needs it.
package session

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/crlserver/internal/fsutil"
	"github.com/specialistvlad/crlserver/internal/playground"
)

var (
	// ErrEmptyName is returned by Init when no player name is given.
	ErrEmptyName = playground.ErrEmptyName
	// ErrNoHome is returned by Init when the player's playground directory
	// does not exist yet. Provision it and call Init again.
	ErrNoHome = errors.New("player home directory does not exist")
)

// Context is the state of the active session.
type Context struct {
	base string

	name   string
	home   string
	logged bool
	active bool
}

// New returns an uninitialized Context whose homes live under
// playgroundBase.
func New(playgroundBase string) *Context {
	return &Context{base: playgroundBase}
}

// Init establishes the session for name. The home directory is
// <base>/<first byte of name>/<name> and must already exist; otherwise the
// context is left uninitialized and ErrNoHome is returned. A successful Init
// always starts logged out.
func (c *Context) Init(name string) error {
	c.reset()
	if err := playground.ValidateName(name); err != nil {
		return err
	}

	home := playground.Path(c.base, name)
	if !fsutil.Exists(home) {
		return fmt.Errorf("%w: %s", ErrNoHome, home)
	}

	c.name = name
	c.home = home
	c.active = true
	return nil
}

// Teardown returns the context to the uninitialized state.
func (c *Context) Teardown() {
	c.reset()
}

func (c *Context) reset() {
	c.name = ""
	c.home = ""
	c.logged = false
	c.active = false
}

// Active reports whether Init has succeeded since the last teardown.
func (c *Context) Active() bool { return c.active }

// Name returns the player name, or "" when inactive.
func (c *Context) Name() string { return c.name }

// Home returns the player's playground directory, or "" when inactive.
func (c *Context) Home() string { return c.home }

// Logged reports whether the player has authenticated.
func (c *Context) Logged() bool { return c.logged }

// SetLogged records the outcome of authentication. It has no effect on an
// inactive context.
func (c *Context) SetLogged(logged bool) {
	if !c.active {
		return
	}
	c.logged = logged
}

// Package screen owns the player's terminal for the lifetime of a session.
package screen

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ErrTooSmall is returned by Attach when the terminal is smaller than the
// games require.
var ErrTooSmall = errors.New("terminal too small")

// Screen wraps an initialized tcell screen.
type Screen struct {
	s      tcell.Screen
	closed bool
}

// Attach takes ownership of an initialized screen after checking that it has
// at least minRows rows and minCols columns. When the check fails the screen
// is finalized before returning.
func Attach(s tcell.Screen, minRows, minCols int) (*Screen, error) {
	cols, rows := s.Size()
	if rows < minRows || cols < minCols {
		s.Fini()
		return nil, fmt.Errorf("%w: must be displayed on %d x %d screen (or larger), got %d x %d",
			ErrTooSmall, minRows, minCols, rows, cols)
	}

	s.HideCursor()
	s.DisableMouse()
	s.Clear()
	return &Screen{s: s}, nil
}

// OpenTerminal initializes the controlling terminal and attaches to it.
func OpenTerminal(minRows, minCols int) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	return Attach(s, minRows, minCols)
}

// Size returns the current width and height.
func (sc *Screen) Size() (int, int) {
	return sc.s.Size()
}

// Print writes text at column x of row y and shows it. Wide runes take two
// columns; zero-width runes combine with the preceding one.
func (sc *Screen) Print(x, y int, text string) {
	var (
		mainc rune
		combc []rune
		width int
	)
	flush := func() {
		if width > 0 {
			sc.s.SetContent(x, y, mainc, combc, tcell.StyleDefault)
			x += width
		}
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			if width > 0 {
				combc = append(combc, r)
			}
			continue
		}
		flush()
		mainc, combc, width = r, nil, w
	}
	flush()
	sc.s.Show()
}

// Close restores the terminal. Calling it more than once is harmless.
func (sc *Screen) Close() {
	if sc == nil || sc.closed {
		return
	}
	sc.closed = true
	sc.s.Fini()
}

// Package signals installs the process signal policy.
//
// SIGINT and SIGQUIT ask the server to quit; SIGHUP, SIGTERM and SIGTSTP are
// ignored so a dropped connection or a stray suspend cannot leave a player's
// files half written. While a cleanup Guard is held the quit signals are
// ignored as well, so cleanup cannot be re-entered.
package signals

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	quitSignals    = []os.Signal{syscall.SIGINT, syscall.SIGQUIT}
	ignoredSignals = []os.Signal{syscall.SIGHUP, syscall.SIGTERM, syscall.SIGTSTP}
)

// Handler dispatches quit signals to a callback.
type Handler struct {
	ch     chan os.Signal
	onQuit func(os.Signal)
	done   chan struct{}

	mu      sync.Mutex
	guards  int
	stopped bool
}

// Heed installs the signal policy and calls onQuit for every quit signal
// received while no guard is held. onQuit runs on the handler's goroutine.
func Heed(onQuit func(os.Signal)) *Handler {
	h := &Handler{
		ch:     make(chan os.Signal, 1),
		onQuit: onQuit,
		done:   make(chan struct{}),
	}
	signal.Ignore(ignoredSignals...)
	signal.Notify(h.ch, quitSignals...)
	go h.loop()
	return h
}

func (h *Handler) loop() {
	for {
		select {
		case sig := <-h.ch:
			if h.Guarded() {
				continue
			}
			h.onQuit(sig)
		case <-h.done:
			return
		}
	}
}

// Guard masks the quit signals until the returned release function is
// called. Guards nest; handling resumes when the last one is released.
// Release is idempotent.
func (h *Handler) Guard() (release func()) {
	h.mu.Lock()
	h.guards++
	if h.guards == 1 && !h.stopped {
		signal.Ignore(quitSignals...)
	}
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.guards--
			if h.guards == 0 && !h.stopped {
				signal.Notify(h.ch, quitSignals...)
			}
		})
	}
}

// Guarded reports whether a guard is currently held.
func (h *Handler) Guarded() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.guards > 0
}

// Stop uninstalls the handler and restores default handling of the quit
// signals.
func (h *Handler) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return
	}
	h.stopped = true
	signal.Stop(h.ch)
	signal.Reset(quitSignals...)
	close(h.done)
}

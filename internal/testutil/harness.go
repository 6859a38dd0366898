// Package testutil holds helpers shared by package tests.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a background context carrying a debug-level text logger
// that writes into the returned buffer. Set CRL_TEST_LOGS=true to dump the
// buffer at the end of the test.
func Context(t *testing.T) (context.Context, *SafeBuffer) {
	t.Helper()
	buf := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Cleanup(func() {
		if os.Getenv("CRL_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return ctxlog.WithLogger(context.Background(), logger), buf
}

// WriteFiles creates every file under root. Names may contain slashes;
// missing parent directories are created.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// Layout is a throwaway server tree: a games directory, a playground base
// and a template directory, all under one temporary root.
type Layout struct {
	Root       string
	Games      string
	Playground string
	Misc       string
}

// NewLayout creates an empty Layout.
func NewLayout(t *testing.T) *Layout {
	t.Helper()
	root := t.TempDir()
	l := &Layout{
		Root:       root,
		Games:      filepath.Join(root, "games"),
		Playground: filepath.Join(root, "playground"),
		Misc:       filepath.Join(root, "misc"),
	}
	for _, dir := range []string{l.Games, l.Playground, l.Misc} {
		require.NoError(t, os.Mkdir(dir, 0755))
	}
	return l
}

package playground

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/crlserver/internal/fsutil"
	"github.com/specialistvlad/crlserver/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTemplateDir creates a misc directory with the given files.
func newTemplateDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, files)
	return dir
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("/pg", "a"), ShardPath("/pg", "alice"))
	assert.Equal(t, filepath.Join("/pg", "a", "alice"), Path("/pg", "alice"))
	assert.Equal(t, filepath.Join("/pg", "b", "b"), Path("/pg", "b"))

	long := strings.Repeat("x", 300)
	assert.Equal(t, filepath.Join("/pg", "x", long), Path("/pg", long), "long names must not be truncated")
}

func TestEnsureDir_CreatesShardAndLeaf(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	misc := newTemplateDir(t, map[string]string{"welcome.txt": "hello\n"})
	p := New(base, misc)

	// --- Act ---
	err := p.EnsureDir(ctx, "alice")

	// --- Assert ---
	require.NoError(t, err)
	for _, dir := range []string{filepath.Join(base, "a"), filepath.Join(base, "a", "alice")} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, fsutil.PrivateDirMode, info.Mode().Perm(), dir)
	}
	data, err := os.ReadFile(filepath.Join(base, "a", "alice", ".welcome.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestEnsureDir_ExistingDirectories(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "a", "alice"), 0700))
	p := New(base, newTemplateDir(t, nil))

	require.NoError(t, p.EnsureDir(ctx, "alice"))
	assert.Equal(t, base, p.Base())
}

func TestEnsureDir_SharedShard(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	p := New(base, newTemplateDir(t, nil))

	require.NoError(t, p.EnsureDir(ctx, "alice"))
	require.NoError(t, p.EnsureDir(ctx, "adam"))

	entries, err := os.ReadDir(filepath.Join(base, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "adam", entries[0].Name())
	assert.Equal(t, "alice", entries[1].Name())
}

func TestEnsureDir_EmptyName(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	p := New(base, newTemplateDir(t, nil))

	err := p.EnsureDir(ctx, "")
	require.ErrorIs(t, err, ErrEmptyName)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing should be created for an empty name")
}

func TestEnsureDir_BaseMissing(t *testing.T) {
	ctx, _ := testutil.Context(t)
	p := New(filepath.Join(t.TempDir(), "no", "such", "base"), newTemplateDir(t, nil))

	err := p.EnsureDir(ctx, "alice")
	require.ErrorIs(t, err, ErrNotProvisioned)
}

func TestEnsureDir_TemplateMissing(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	p := New(base, filepath.Join(t.TempDir(), "missing-misc"))

	err := p.EnsureDir(ctx, "bob")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotProvisioned))
	// The directory itself is usable even though seeding failed.
	assert.True(t, fsutil.Exists(filepath.Join(base, "b", "bob")))
}

func TestValidateName(t *testing.T) {
	testCases := []struct {
		name    string
		wantErr error
	}{
		{name: "alice"},
		{name: "ünïcode"},
		{name: ".dotfirst"},
		{name: "", wantErr: ErrEmptyName},
		{name: ".", wantErr: ErrInvalidName},
		{name: "..", wantErr: ErrInvalidName},
		{name: "a/b", wantErr: ErrInvalidName},
		{name: "a\\b"},
		{name: "nul\x00", wantErr: ErrInvalidName},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.name)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEnsureDir_InvalidNameCreatesNothing(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	p := New(base, newTemplateDir(t, nil))

	require.ErrorIs(t, p.EnsureDir(ctx, "../escape"), ErrInvalidName)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnsureDir_BackslashIsAnOrdinaryByte(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	p := New(base, newTemplateDir(t, nil))

	require.NoError(t, p.EnsureDir(ctx, "a\\b"))
	assert.True(t, fsutil.Exists(filepath.Join(base, "a", "a\\b")))
}

func TestEnsureDir_MultiByteNameUsesFirstByte(t *testing.T) {
	ctx, _ := testutil.Context(t)
	base := t.TempDir()
	p := New(base, newTemplateDir(t, nil))

	require.NoError(t, p.EnsureDir(ctx, "émile"))
	assert.True(t, fsutil.Exists(filepath.Join(base, "émile"[:1], "émile")))
}

package playground

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/crlserver/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFiles(t *testing.T) {
	// --- Arrange ---
	ctx, _ := testutil.Context(t)
	big := strings.Repeat("0123456789", 500)
	misc := newTemplateDir(t, map[string]string{
		"welcome.txt": "welcome!\n",
		"nethackrc":   big,
		".hidden":     "secret",
	})
	require.NoError(t, os.Mkdir(filepath.Join(misc, "subdir"), 0755))
	dest := t.TempDir()

	// --- Act ---
	err := SeedFiles(ctx, misc, dest)

	// --- Assert ---
	require.NoError(t, err)

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{".nethackrc", ".welcome.txt"}, names)

	data, err := os.ReadFile(filepath.Join(dest, ".welcome.txt"))
	require.NoError(t, err)
	assert.Equal(t, "welcome!\n", string(data))

	data, err = os.ReadFile(filepath.Join(dest, ".nethackrc"))
	require.NoError(t, err)
	assert.Equal(t, big, string(data), "multi-chunk files must be copied byte for byte")

	info, err := os.Stat(filepath.Join(dest, ".welcome.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSeedFiles_AppendsToExistingData(t *testing.T) {
	ctx, _ := testutil.Context(t)
	misc := newTemplateDir(t, map[string]string{"welcome.txt": "template\n"})
	dest := t.TempDir()
	target := filepath.Join(dest, ".welcome.txt")
	require.NoError(t, os.WriteFile(target, []byte("player data\n"), 0600))

	require.NoError(t, SeedFiles(ctx, misc, dest))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "player data\ntemplate\n", string(data))

	// A second run appends the template again and keeps everything before it.
	require.NoError(t, SeedFiles(ctx, misc, dest))
	data, err = os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "player data\ntemplate\ntemplate\n", string(data))
}

func TestSeedFiles_MissingTemplateDir(t *testing.T) {
	ctx, _ := testutil.Context(t)
	err := SeedFiles(ctx, filepath.Join(t.TempDir(), "missing"), t.TempDir())
	require.Error(t, err)
}

func TestSeedFiles_UnopenableDestinationIsSkipped(t *testing.T) {
	ctx, logs := testutil.Context(t)
	misc := newTemplateDir(t, map[string]string{
		"blocked": "x",
		"ok":      "y",
	})
	dest := t.TempDir()
	// A directory where the destination file should go makes the append
	// open fail for that pair only.
	require.NoError(t, os.Mkdir(filepath.Join(dest, ".blocked"), 0700))

	require.NoError(t, SeedFiles(ctx, misc, dest))

	data, err := os.ReadFile(filepath.Join(dest, ".ok"))
	require.NoError(t, err)
	assert.Equal(t, "y", string(data))
	assert.Contains(t, logs.String(), "Skipping template file")
}

func TestSeedFiles_MissingDestinationDir(t *testing.T) {
	ctx, logs := testutil.Context(t)
	misc := newTemplateDir(t, map[string]string{"welcome.txt": "hi"})

	err := SeedFiles(ctx, misc, filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err, "per-file failures are skipped, not reported")
	assert.Contains(t, logs.String(), "Skipping template file")
}

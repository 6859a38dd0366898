package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/specialistvlad/crlserver/internal/descriptor"
)

// ErrDirUnreadable is returned by Load when the descriptor directory cannot be
// opened. The registry cannot be built and startup should not continue.
var ErrDirUnreadable = errors.New("games directory unreadable")

// Load scans dir and parses every candidate file into a new Registry.
// Candidates are regular files or symlinks with a non-zero size; everything
// else is skipped. A file that cannot be opened or read is logged and skipped.
func Load(ctx context.Context, dir string) (*Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading descriptors...", "path", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirUnreadable, dir, err)
	}

	reg := New()
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		if !isCandidateType(entry.Type()) {
			logger.Debug("Skipping non-regular entry", "file", path, "type", entry.Type().String())
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			logger.Warn("Skipping unreadable descriptor", "file", path, "error", err)
			continue
		}
		if info.Size() == 0 {
			logger.Debug("Skipping empty descriptor", "file", path)
			continue
		}

		d, err := descriptor.ParseFile(path)
		if err != nil {
			logger.Warn("Skipping descriptor", "file", path, "error", err)
			continue
		}
		reg.Add(d)
		logger.Debug("Loaded descriptor", "file", path, "name", d.Title())
	}

	logger.Info("Registry loaded successfully.", "games_loaded", reg.Size())
	return reg, nil
}

// isCandidateType reports whether a directory entry type may hold a
// descriptor.
func isCandidateType(mode fs.FileMode) bool {
	return mode.IsRegular() || mode&fs.ModeSymlink != 0
}

package playground

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/specialistvlad/crlserver/internal/fsutil"
)

var (
	// ErrEmptyName is returned when no player name is given.
	ErrEmptyName = errors.New("empty player name")
	// ErrInvalidName is returned for names that cannot be used as a single
	// path element.
	ErrInvalidName = errors.New("invalid player name")
	// ErrNotProvisioned is returned when the playground directory could not
	// be created or verified.
	ErrNotProvisioned = errors.New("playground directory not provisioned")
)

// Provisioner creates and seeds playground directories under a base path.
type Provisioner struct {
	base string
	misc string
}

// New returns a Provisioner rooted at base that seeds new playgrounds from
// the template files in misc.
func New(base, misc string) *Provisioner {
	return &Provisioner{base: base, misc: misc}
}

// Base returns the playground base directory.
func (p *Provisioner) Base() string { return p.base }

// ValidateName checks that name can be used as one directory name under the
// playground base.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ShardPath returns the shard directory for name.
func ShardPath(base, name string) string {
	return filepath.Join(base, name[:1])
}

// Path returns the playground directory for name. name must pass
// ValidateName.
func Path(base, name string) string {
	return filepath.Join(ShardPath(base, name), name)
}

// EnsureDir creates the shard and leaf directories for name when absent,
// verifies the leaf exists and seeds it from the template directory.
// Directory creation errors are not reported directly; a leaf that is still
// missing afterwards yields ErrNotProvisioned.
func (p *Provisioner) EnsureDir(ctx context.Context, name string) error {
	logger := ctxlog.FromContext(ctx)
	if err := ValidateName(name); err != nil {
		return err
	}

	shard := ShardPath(p.base, name)
	if err := fsutil.MkdirPrivate(shard); err != nil {
		logger.Debug("Shard directory not created", "path", shard, "error", err)
	}
	leaf := Path(p.base, name)
	if err := fsutil.MkdirPrivate(leaf); err != nil {
		logger.Debug("Playground directory not created", "path", leaf, "error", err)
	}

	if !fsutil.Exists(leaf) {
		return fmt.Errorf("%w: %s", ErrNotProvisioned, leaf)
	}
	logger.Info("Playground directory ready.", "player", name, "path", leaf)

	return SeedFiles(ctx, p.misc, leaf)
}

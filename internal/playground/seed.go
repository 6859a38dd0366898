package playground

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/specialistvlad/crlserver/internal/fsutil"
)

// SeedFiles appends every visible file of templateDir to a hidden copy in
// destDir: templateDir/welcome.txt goes to destDir/.welcome.txt. Destination
// files are opened for append and never truncated, so running it twice
// appends the template content twice; callers seed only on first
// provisioning.
//
// Only an unreadable templateDir is reported. A file pair that cannot be
// opened is skipped and copy or close failures are logged.
func SeedFiles(ctx context.Context, templateDir, destDir string) error {
	logger := ctxlog.FromContext(ctx)

	dir, err := os.Open(templateDir)
	if err != nil {
		return fmt.Errorf("opening template directory: %w", err)
	}
	defer func() {
		if err := dir.Close(); err != nil {
			logger.Warn("Closing template directory failed", "path", templateDir, "error", err)
		}
	}()

	entries, err := dir.ReadDir(-1)
	if err != nil {
		return fmt.Errorf("reading template directory: %w", err)
	}

	seeded := 0
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}
		src := filepath.Join(templateDir, name)
		dst := filepath.Join(destDir, "."+name)
		if seedFile(ctx, src, dst) {
			seeded++
		}
	}

	logger.Debug("Playground seeded.", "path", destDir, "files", seeded)
	return nil
}

// seedFile appends src to dst and reports whether both files could be
// opened.
func seedFile(ctx context.Context, src, dst string) bool {
	logger := ctxlog.FromContext(ctx)

	in, err := os.Open(src)
	if err != nil {
		logger.Warn("Skipping template file", "file", src, "error", err)
		return false
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		logger.Warn("Skipping template file", "file", dst, "error", err)
		if cerr := in.Close(); cerr != nil {
			logger.Warn("Closing template file failed", "file", src, "error", cerr)
		}
		return false
	}

	if _, err := fsutil.AppendCopy(out, in); err != nil {
		logger.Warn("Copying template file failed", "from", src, "to", dst, "error", err)
	}
	if err := in.Close(); err != nil {
		logger.Warn("Closing template file failed", "file", src, "error", err)
	}
	if err := out.Close(); err != nil {
		logger.Warn("Closing playground file failed", "file", dst, "error", err)
	}
	return true
}

package registry

import (
	"context"
	"fmt"

	"github.com/specialistvlad/crlserver/internal/ctxlog"
	"github.com/specialistvlad/crlserver/internal/descriptor"
)

// Validate reports descriptors that are legal registry members but cannot be
// launched or listed sensibly: no name, no path, or a name shared with another
// file. It never removes anything; the returned problems are also logged at
// warn level.
func (r *Registry) Validate(ctx context.Context) []string {
	logger := ctxlog.FromContext(ctx)
	var problems []string

	seen := make(map[string]string)
	for _, d := range r.All() {
		src := d.Source
		if src == "" {
			src = "<memory>"
		}

		name, hasName := d.Get(descriptor.KeyName)
		if !hasName {
			problems = append(problems, fmt.Sprintf("%s: descriptor has no name", src))
		}
		if _, ok := d.Get(descriptor.KeyPath); !ok {
			problems = append(problems, fmt.Sprintf("%s: descriptor has no path", src))
		}
		if hasName {
			if first, dup := seen[name]; dup {
				problems = append(problems, fmt.Sprintf("%s: name %q already declared by %s", src, name, first))
			} else {
				seen[name] = src
			}
		}
	}

	for _, p := range problems {
		logger.Warn("Registry validation", "problem", p)
	}
	return problems
}

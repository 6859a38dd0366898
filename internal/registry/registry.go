package registry

import (
	"github.com/specialistvlad/crlserver/internal/descriptor"
)

// Registry is the in-memory collection of game descriptors.
type Registry struct {
	games []*descriptor.Descriptor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Add inserts a descriptor. Nil descriptors are dropped.
func (r *Registry) Add(d *descriptor.Descriptor) {
	if d == nil {
		return
	}
	r.games = append(r.games, d)
}

// Size returns the number of descriptors held.
func (r *Registry) Size() int {
	if r == nil {
		return 0
	}
	return len(r.games)
}

// All returns a copy of the held descriptors.
func (r *Registry) All() []*descriptor.Descriptor {
	if r == nil {
		return nil
	}
	out := make([]*descriptor.Descriptor, len(r.games))
	copy(out, r.games)
	return out
}

// Lookup returns every descriptor whose name equals name.
func (r *Registry) Lookup(name string) []*descriptor.Descriptor {
	if r == nil {
		return nil
	}
	var out []*descriptor.Descriptor
	for _, d := range r.games {
		if v, ok := d.Get(descriptor.KeyName); ok && v == name {
			out = append(out, d)
		}
	}
	return out
}

// Release drops every descriptor. It is safe on an empty or already released
// registry.
func (r *Registry) Release() {
	if r == nil {
		return
	}
	clear(r.games)
	r.games = nil
}

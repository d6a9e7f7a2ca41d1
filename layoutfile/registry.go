package layoutfile

import (
	"sort"

	"github.com/wippyai/bitwire/errors"
	"github.com/wippyai/bitwire/wire"
)

// Registry is an immutable set of validated, named layouts.
type Registry struct {
	layouts map[string]*wire.Descriptor
	names   []string
}

// NewRegistry validates every layout and returns a registry holding them.
func NewRegistry(layouts map[string]*wire.Descriptor) (*Registry, error) {
	r := &Registry{
		layouts: make(map[string]*wire.Descriptor, len(layouts)),
		names:   make([]string, 0, len(layouts)),
	}
	for name, d := range layouts {
		if name == "" {
			return nil, errors.InvalidSchema(errors.PhaseLoad, nil, "layout with empty name")
		}
		if err := wire.Validate(d); err != nil {
			return nil, errors.Within(errors.WithPhase(err, errors.PhaseLoad), name)
		}
		r.layouts[name] = d
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Lookup returns the named layout.
func (r *Registry) Lookup(name string) (*wire.Descriptor, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.layouts[name]
	return d, ok
}

// Get is Lookup returning a NotFound error for unknown names.
func (r *Registry) Get(name string) (*wire.Descriptor, error) {
	if d, ok := r.Lookup(name); ok {
		return d, nil
	}
	return nil, errors.NotFound(errors.PhaseLoad, "layout", name)
}

// Names returns the layout names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Resolve parses a type expression whose references name layouts in r,
// e.g. "al-control[2]" or "be:u32".
func (r *Registry) Resolve(expr string) (*wire.Descriptor, error) {
	d, err := parseType(expr, func(name string) (*wire.Descriptor, error) {
		if d, ok := r.Lookup(name); ok {
			return d, nil
		}
		return nil, errors.InvalidSchema(errors.PhaseLoad, nil, "unknown layout %q", name)
	})
	if err != nil {
		return nil, err
	}
	if err := wire.Validate(d); err != nil {
		return nil, errors.WithPhase(err, errors.PhaseLoad)
	}
	return d, nil
}

// Merge returns a registry holding the layouts of r and other.
// Duplicate names are rejected.
func (r *Registry) Merge(other *Registry) (*Registry, error) {
	out := make(map[string]*wire.Descriptor, r.Len()+other.Len())
	for _, src := range []*Registry{r, other} {
		if src == nil {
			continue
		}
		for name, d := range src.layouts {
			if _, dup := out[name]; dup {
				return nil, errors.InvalidSchema(errors.PhaseLoad, []string{name}, "layout declared twice")
			}
			out[name] = d
		}
	}
	return NewRegistry(out)
}

// Extend returns a registry holding the layouts of r and other, with
// other's layouts replacing those of r that share a name.
func (r *Registry) Extend(other *Registry) (*Registry, error) {
	out := make(map[string]*wire.Descriptor, r.Len()+other.Len())
	for _, src := range []*Registry{r, other} {
		if src == nil {
			continue
		}
		for name, d := range src.layouts {
			out[name] = d
		}
	}
	return NewRegistry(out)
}

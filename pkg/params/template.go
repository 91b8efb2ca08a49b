package params

import (
	"sort"
)

// Template is the immutable aggregate of every spec discovered in a document
// tree plus its default values. Build it once at startup and share it by
// reference across concurrently handled requests; no operation mutates it
// after construction.
type Template struct {
	specs    map[string]Spec
	defaults map[string]string
}

// NewTemplate folds extracted specs into a template in a single pass. Later
// duplicates of a name overwrite earlier ones, matching OpenSCAD's own
// last-write-wins override semantics.
func NewTemplate(specs []Spec) *Template {
	t := &Template{
		specs:    make(map[string]Spec, len(specs)),
		defaults: make(map[string]string, len(specs)),
	}
	for _, spec := range specs {
		t.specs[spec.Name] = spec
		t.defaults[spec.Name] = spec.Default
	}
	return t
}

// Instantiate returns a fresh per-request instance seeded with the
// template's defaults.
func (t *Template) Instantiate() *Instance {
	values := make(map[string]string, len(t.defaults))
	for name, value := range t.defaults {
		values[name] = value
	}
	return &Instance{specs: t.specs, values: values}
}

// Spec returns the spec for a declaration name.
func (t *Template) Spec(name string) (Spec, bool) {
	spec, ok := t.specs[name]
	return spec, ok
}

// Default returns the default raw text for a declaration name.
func (t *Template) Default(name string) (string, bool) {
	value, ok := t.defaults[name]
	return value, ok
}

// Len reports the number of discovered specs.
func (t *Template) Len() int {
	return len(t.specs)
}

// Names returns every discovered declaration name in ascending order.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.specs))
	for name := range t.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UserSpecs returns the user-adjustable specs in ascending-name order, for
// consumption by form builders and other UI collaborators.
func (t *Template) UserSpecs() []Spec {
	specs := make([]Spec, 0, len(t.specs))
	for _, name := range t.Names() {
		if spec := t.specs[name]; spec.UserAdjustable {
			specs = append(specs, spec)
		}
	}
	return specs
}

package params

import (
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"
)

// Instance is a per-request working copy of a template's values. Create one
// per request via Template.Instantiate and discard it once its override
// fragments have been consumed; instances are never shared across requests
// and need no locking.
type Instance struct {
	specs  map[string]Spec
	values map[string]string
}

// SetFromField validates a submitted form value and stores it against the
// matching declaration. Field names arrive in form convention (snake_case)
// and are mapped to declaration names via FieldToParamName.
//
// Empty or all-whitespace text means "keep the current value" and succeeds
// without touching anything, as does a field that maps to no known spec.
// A value that fails the spec's type validation is rejected without
// affecting other fields already applied.
//
// Note that the spec's UserAdjustable flag only controls what UI builders
// see; overrides targeting non-adjustable specs are still accepted here.
func (i *Instance) SetFromField(fieldName, text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	name := FieldToParamName(fieldName)
	spec, ok := i.specs[name]
	if !ok {
		// Unknown fields are tolerated; web forms routinely carry extras.
		return nil
	}

	value, err := encodeValue(spec, text)
	if err != nil {
		return err
	}

	i.values[name] = value
	return nil
}

// encodeValue coerces submitted text into the exact textual form OpenSCAD
// expects for the spec's type.
func encodeValue(spec Spec, text string) (string, error) {
	switch spec.Type {
	case TypeBool:
		b, err := ParseBool(text)
		if err != nil {
			return "", fmt.Errorf("params: field %s: %w", spec.Name, err)
		}
		if b {
			return "true", nil
		}
		return "false", nil
	case TypeNumber:
		// Validate only; the submitted text is kept verbatim so the
		// caller's precision and notation survive into the define.
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return "", fmt.Errorf("params: field %s: %q is not a number", spec.Name, text)
		}
		return text, nil
	case TypeString:
		return quoteString(text), nil
	default:
		return "", fmt.Errorf("params: field %s has unknown type %q", spec.Name, spec.Type)
	}
}

// quoteString wraps text in double quotes, doubling backslashes before
// escaping quotes so the output matches OpenSCAD string-literal syntax
// byte-for-byte.
func quoteString(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

// Defines yields one "NAME=value" fragment per stored value in ascending
// name order, independent of submission order. The sequence is finite and
// restartable; deterministic ordering keeps the otherwise opaque external
// invocation reproducible and testable.
func (i *Instance) Defines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, name := range i.sortedNames() {
			if !yield(name + "=" + i.values[name]) {
				return
			}
		}
	}
}

// DefineList collects Defines into a slice.
func (i *Instance) DefineList() []string {
	defines := make([]string, 0, len(i.values))
	for define := range i.Defines() {
		defines = append(defines, define)
	}
	return defines
}

// GetRaw returns the current raw text stored for a declaration name.
func (i *Instance) GetRaw(name string) (string, bool) {
	value, ok := i.values[name]
	return value, ok
}

// Spec returns the spec backing a declaration name.
func (i *Instance) Spec(name string) (Spec, bool) {
	spec, ok := i.specs[name]
	return spec, ok
}

func (i *Instance) sortedNames() []string {
	names := make([]string, 0, len(i.values))
	for name := range i.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

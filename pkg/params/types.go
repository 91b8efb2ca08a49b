// Package params holds the parameter data model: specs discovered from a
// SCAD document tree, the immutable template built from them, and the
// per-request instances that accept form-field overrides and serialize them
// back into OpenSCAD `NAME=value` override fragments.
package params

// Type is the inferred kind of a discovered declaration. Inference is
// syntactic only; right-hand sides are never evaluated.
type Type string

const (
	TypeNumber Type = "number"
	TypeBool   Type = "bool"
	TypeString Type = "string"
)

// Spec is one discovered top-level declaration.
type Spec struct {
	// Name is the declaration identifier, always uppercase-with-underscores.
	Name string `json:"name"`

	// Default holds the right-hand-side text exactly as it appeared in the
	// source, unevaluated. For TypeString it includes the quotes.
	Default string `json:"default"`

	// Type is inferred once at extraction time and never changes.
	Type Type `json:"type"`

	// UserAdjustable reports whether the spec is exposed to external form
	// builders. It does not gate SetFromField; see Instance.SetFromField.
	UserAdjustable bool `json:"userAdjustable"`

	// Comment is the trailing same-line annotation, if any.
	Comment string `json:"comment,omitempty"`

	// Options is the ordered choice list parsed from the trailing comment,
	// possibly empty. Consumed by form builders, never enforced here.
	Options []string `json:"options,omitempty"`
}

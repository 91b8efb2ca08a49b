// Package model defines the form-friendly representation of a parameter
// template that renderers consume.
package model

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeSelect  FieldType = "select"
)

// Field models an individual input inside a generated form. Struct fields
// are annotated so renderers can serialise them directly when needed.
type Field struct {
	// Name is the external form-field name (snake_case).
	Name string `json:"name"`

	// Param is the backing declaration name (CAPS).
	Param string `json:"param"`

	Type        FieldType `json:"type"`
	Label       string    `json:"label,omitempty"`
	Description string    `json:"description,omitempty"`
	Default     string    `json:"default,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Checked     bool      `json:"checked,omitempty"`
}

// FormModel is the top-level representation renderers consume. Fields are
// ordered ascending by parameter name, mirroring the template enumeration.
type FormModel struct {
	Title    string            `json:"title"`
	Action   string            `json:"action"`
	Method   string            `json:"method"`
	Fields   []Field           `json:"fields"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

package model

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-partgen/pkg/params"
)

// Builder converts a parameter template into a FormModel.
type Builder interface {
	Build(template *params.Template) (FormModel, error)
}

type builder struct {
	policy *bluemonday.Policy
}

// NewBuilder returns the built-in Builder. Comment text originates in the
// untrusted .scad sources, so descriptions pass through a strict HTML
// sanitizer before reaching a renderer.
func NewBuilder() Builder {
	return &builder{policy: bluemonday.StrictPolicy()}
}

// Build produces one field per user-adjustable spec, in ascending parameter
// name order.
func (b *builder) Build(template *params.Template) (FormModel, error) {
	form := FormModel{
		Title:  "Generate STL",
		Action: "/render",
		Method: "post",
	}
	if template == nil {
		return form, nil
	}

	for _, spec := range template.UserSpecs() {
		form.Fields = append(form.Fields, b.buildField(spec))
	}
	return form, nil
}

func (b *builder) buildField(spec params.Spec) Field {
	field := Field{
		Name:        strings.ToLower(spec.Name),
		Param:       spec.Name,
		Label:       labelFromName(spec.Name),
		Description: b.policy.Sanitize(descriptionFromComment(spec.Comment)),
		Default:     spec.Default,
		Options:     append([]string(nil), spec.Options...),
	}

	switch {
	case len(spec.Options) > 0:
		field.Type = FieldTypeSelect
		field.Default = unquote(spec.Default)
	case spec.Type == params.TypeBool:
		field.Type = FieldTypeBoolean
		field.Checked = strings.EqualFold(spec.Default, "true")
	case spec.Type == params.TypeString:
		field.Type = FieldTypeString
		field.Default = unquote(spec.Default)
	default:
		field.Type = FieldTypeNumber
	}
	return field
}

// labelFromName turns COASTER_D into "Coaster d".
func labelFromName(name string) string {
	words := strings.Split(strings.ToLower(name), "_")
	if len(words) == 0 {
		return name
	}
	if len(words[0]) > 0 {
		words[0] = strings.ToUpper(words[0][:1]) + words[0][1:]
	}
	return strings.Join(words, " ")
}

// descriptionFromComment strips the machinery tokens (marker, options list)
// so only prose written for humans remains.
func descriptionFromComment(comment string) string {
	text := strings.ReplaceAll(comment, "@param", "")
	if idx := strings.Index(strings.ToLower(text), "options:"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// unquote removes the outer quotes from a string default so it can seed an
// input value. Escapes are left alone; defaults come from the source text.
func unquote(raw string) string {
	if len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`) {
		return raw[1 : len(raw)-1]
	}
	return raw
}

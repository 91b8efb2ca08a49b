package params

import (
	"fmt"
	"strings"
)

// FieldToParamName maps an external form-field name to its declaration
// name. Form fields use snake_case, declarations use CAPS; the mapping is
// total and trivially reversible.
func FieldToParamName(field string) string {
	return strings.ToUpper(field)
}

// ParseBool parses the boolean variants HTML forms commonly submit.
func ParseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	default:
		return false, fmt.Errorf("%q is not a boolean", text)
	}
}

// SanitizeFilenameComponent maps user-supplied text to something safe in a
// filename or Content-Disposition header. ASCII letters, digits, '-' and
// '_' pass through; every other rune becomes a single '_'. Never fails.
func SanitizeFilenameComponent(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

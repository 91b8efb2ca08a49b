package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplatesFS exposes the embedded template bundle so callers can wrap or
// override individual files.
func TemplatesFS() fs.FS {
	return templateFS
}

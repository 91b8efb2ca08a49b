// Package render defines the renderer contract and a named registry that
// lets callers swap form renderers without touching the pipeline.
package render

import (
	"context"

	"github.com/goliatone/go-partgen/pkg/model"
)

// Renderer converts a FormModel into a byte representation (HTML by
// default).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel) ([]byte, error)
}

// Package partgen discovers overridable parameters in OpenSCAD document
// trees and turns untrusted form submissions into deterministic openscad
// override invocations.
package partgen

import (
	"context"

	"github.com/goliatone/go-partgen/pkg/orchestrator"
	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/scad"
)

// ParamSpec aliases the core spec type for convenience.
type ParamSpec = params.Spec

// ParamTemplate is the immutable, once-built template.
type ParamTemplate = params.Template

// ParamInstance is a per-request working copy of a template.
type ParamInstance = params.Instance

// Source identifies where an entry document lives.
type Source = scad.Source

// SourceFromFile returns a Source pointing to an entry document on disk.
func SourceFromFile(path string) Source {
	return scad.SourceFromFile(path)
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// DiscoverTemplate loads the document tree rooted at src and extracts its
// parameter template. It is the simplest entry point for callers that just
// want the template.
func DiscoverTemplate(ctx context.Context, src Source, options ...orchestrator.Option) (*ParamTemplate, error) {
	gen := orchestrator.New(options...)
	return gen.BuildTemplate(ctx, src)
}

// GenerateFormHTML builds the template's form model and renders it with the
// named renderer (the built-in vanilla renderer when empty).
func GenerateFormHTML(ctx context.Context, template *ParamTemplate, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.RenderForm(ctx, orchestrator.FormRequest{
		Template: template,
		Renderer: rendererName,
	})
}

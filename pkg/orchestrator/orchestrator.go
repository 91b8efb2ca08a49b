// Package orchestrator coordinates the loader → extractor → template
// pipeline and, for UI collaborators, template → form model → renderer.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	internalExtractor "github.com/goliatone/go-partgen/internal/scad/extractor"
	internalLoader "github.com/goliatone/go-partgen/internal/scad/loader"
	"github.com/goliatone/go-partgen/pkg/model"
	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/render"
	"github.com/goliatone/go-partgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-partgen/pkg/scad"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom source tree loader.
func WithLoader(loader scad.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithExtractor injects a custom parameter extractor.
func WithExtractor(extractor scad.Extractor) Option {
	return func(o *Orchestrator) {
		o.extractor = extractor
	}
}

// WithLoaderOptions configures the built-in loader. Ignored when WithLoader
// supplies a custom implementation.
func WithLoaderOptions(options scad.LoaderOptions) Option {
	return func(o *Orchestrator) {
		o.loaderOptions = options
	}
}

// WithExtractorOptions configures the built-in extractor. Ignored when
// WithExtractor supplies a custom implementation.
func WithExtractorOptions(options scad.ExtractorOptions) Option {
	return func(o *Orchestrator) {
		o.extractorOptions = options
	}
}

// WithModelBuilder injects a custom form model builder.
func WithModelBuilder(builder model.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// Orchestrator coordinates the full pipeline from SCAD tree to parameter
// template and rendered form. It applies sensible defaults (built-in loader
// and extractor, vanilla renderer) while remaining open to dependency
// injection.
type Orchestrator struct {
	loader           scad.Loader
	extractor        scad.Extractor
	builder          model.Builder
	registry         *render.Registry
	defaultRenderer  string
	loaderOptions    scad.LoaderOptions
	extractorOptions scad.ExtractorOptions
	initialiseErr    error
	defaultsApplied  bool
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer:  defaultRendererName,
		loaderOptions:    scad.NewLoaderOptions(),
		extractorOptions: scad.NewExtractorOptions(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// BuildTemplate executes the loader → extractor sequence once and folds the
// result into an immutable template. Call it at startup and share the
// template across requests.
func (o *Orchestrator) BuildTemplate(ctx context.Context, src scad.Source) (*params.Template, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("orchestrator: source is required")
	}

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: load tree: %w", err)
	}

	specs, err := o.extractor.Extract(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: extract params: %w", err)
	}

	return params.NewTemplate(specs), nil
}

// FormRequest describes the inputs required to render a form for a built
// template.
type FormRequest struct {
	// Template is the parameter template to render. Required.
	Template *params.Template

	// Renderer names the renderer to use. If empty, the orchestrator falls
	// back to the configured default renderer.
	Renderer string

	// Metadata is passed through to the form model (quality defaults and
	// similar renderer hints).
	Metadata map[string]string
}

// RenderForm builds the form model for a template's user-adjustable specs
// and renders it with the requested renderer.
func (o *Orchestrator) RenderForm(ctx context.Context, req FormRequest) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if req.Template == nil {
		return nil, errors.New("orchestrator: template is required")
	}

	form, err := o.builder.Build(req.Template)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build form model: %w", err)
	}
	if len(req.Metadata) > 0 {
		form.Metadata = req.Metadata
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render form: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", target, err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.defaultsApplied {
		return
	}

	if o.loader == nil {
		o.loader = internalLoader.New(o.loaderOptions)
	}
	if o.extractor == nil {
		o.extractor = internalExtractor.New(o.extractorOptions)
	}
	if o.builder == nil {
		o.builder = model.NewBuilder()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}

	o.defaultsApplied = true
}

// Package vanilla renders the upload form as a self-contained HTML page
// using pongo2 templates.
package vanilla

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-partgen/pkg/model"
	"github.com/goliatone/go-partgen/pkg/render"
)

const formTemplate = "templates/form.tmpl"

type Option func(*config)

type config struct {
	templateFS fs.FS
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

type Renderer struct {
	mu        sync.Mutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	return &Renderer{
		set:       pongo2.NewSet("partgen", pongo2.NewFSLoader(cfg.templateFS)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the form template against the supplied model.
func (r *Renderer) Render(ctx context.Context, form model.FormModel) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpl, err := r.template(formTemplate)
	if err != nil {
		return nil, err
	}

	viewContext, err := toContext(form)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: convert form model: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(viewContext, &buf); err != nil {
		return nil, fmt.Errorf("vanilla renderer: execute template: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) template(path string) (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: load template %q: %w", path, err)
	}
	r.templates[path] = tmpl
	return tmpl, nil
}

// toContext exposes the model under its JSON field names so templates read
// form.fields, field.label, and so on.
func toContext(form model.FormModel) (pongo2.Context, error) {
	raw, err := json.Marshal(form)
	if err != nil {
		return nil, err
	}
	decoded := map[string]any{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}
	return pongo2.Context{"form": decoded}, nil
}

// Package server hosts the upload form and the render endpoint. The
// parameter template is built once at startup and shared read-only across
// every request; each request works on its own instance.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/goliatone/go-partgen/pkg/invoke"
	"github.com/goliatone/go-partgen/pkg/orchestrator"
	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/quality"
	"github.com/goliatone/go-partgen/pkg/scad"
)

// Config carries everything the server needs. Addr and EntryPath are
// required; the rest defaults sensibly.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8080".
	Addr string

	// EntryPath is the main .scad document the template is discovered from
	// and that every render invocation targets.
	EntryPath string

	// Quality seeds the per-request engine-quality settings.
	Quality quality.Settings

	// RenderTimeout bounds a single openscad invocation.
	RenderTimeout time.Duration

	// Runner executes render jobs. Defaults to the exec-backed runner.
	Runner invoke.Runner

	// Orchestrator builds the template and renders the form. Defaults to a
	// stock pipeline.
	Orchestrator *orchestrator.Orchestrator

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server is the HTTP front end.
type Server struct {
	cfg      Config
	template *params.Template
	form     []byte
	logger   *log.Logger
}

const defaultRenderTimeout = 5 * time.Minute

// New discovers the parameter template from the configured entry document
// and prepares the request handlers. Template construction is the only
// point where filesystem discovery happens; failures here abort startup.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.EntryPath == "" {
		return nil, errors.New("server: entry path is required")
	}
	if cfg.Orchestrator == nil {
		cfg.Orchestrator = orchestrator.New()
	}
	if cfg.Runner == nil {
		cfg.Runner = invoke.NewExecRunner()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = defaultRenderTimeout
	}
	if (cfg.Quality == quality.Settings{}) {
		cfg.Quality = quality.DefaultSettings()
	}

	template, err := cfg.Orchestrator.BuildTemplate(ctx, scad.SourceFromFile(cfg.EntryPath))
	if err != nil {
		return nil, fmt.Errorf("server: build template: %w", err)
	}

	form, err := cfg.Orchestrator.RenderForm(ctx, orchestrator.FormRequest{
		Template: template,
		Metadata: qualityMetadata(cfg.Quality),
	})
	if err != nil {
		return nil, fmt.Errorf("server: render form: %w", err)
	}

	return &Server{
		cfg:      cfg,
		template: template,
		form:     form,
		logger:   cfg.Logger,
	}, nil
}

// Template exposes the discovered template, mainly for tests and CLI
// listings.
func (s *Server) Template() *params.Template {
	return s.template
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /render", s.handleRender)
	return mux
}

// Run serves until the context is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("HTTP server shut down gracefully")
	return nil
}

func qualityMetadata(settings quality.Settings) map[string]string {
	return map[string]string{
		"fs": fmt.Sprintf("%g", settings.FS),
		"fa": fmt.Sprintf("%g", settings.FA),
		"fn": fmt.Sprintf("%d", settings.FN),
	}
}

package server

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goliatone/go-partgen/pkg/invoke"
	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/quality"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.form)
}

// renderRequest is the decoded multipart payload for one render.
type renderRequest struct {
	svg      []byte
	name     string
	quality  quality.Settings
	instance *params.Instance
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeRender(r)
	if err != nil {
		s.logger.Warn("rejecting render request", "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stl, err := s.render(r.Context(), req)
	if err != nil {
		s.logger.Error("render failed", "err", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	safeName := params.SanitizeFilenameComponent(req.name)
	if safeName == "" {
		safeName = "output"
	}
	w.Header().Set("Content-Type", "model/stl")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", safeName+".stl"))
	_, _ = w.Write(stl)
}

func (s *Server) decodeRender(r *http.Request) (renderRequest, error) {
	req := renderRequest{
		quality:  s.cfg.Quality,
		instance: s.template.Instantiate(),
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, fmt.Errorf("parse multipart form: %w", err)
	}

	svg, err := readUpload(r, "svg")
	if err != nil {
		return req, err
	}
	req.svg = svg

	for field, values := range r.MultipartForm.Value {
		text := ""
		if len(values) > 0 {
			text = values[0]
		}
		switch field {
		case "name":
			req.name = text
		case "fs", "fa", "fn":
			if err := applyQualityField(&req.quality, field, text); err != nil {
				return req, err
			}
		default:
			if err := req.instance.SetFromField(field, text); err != nil {
				return req, err
			}
		}
	}
	return req, nil
}

func readUpload(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("missing %s upload: %w", field, err)
	}
	defer func(c multipart.File) { _ = c.Close() }(file)

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s upload: %w", field, err)
	}
	return data, nil
}

// applyQualityField overrides one quality knob. Empty text keeps the
// configured default, matching the parameter-field convention.
func applyQualityField(settings *quality.Settings, field, text string) error {
	if text == "" {
		return nil
	}
	switch field {
	case "fs":
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("field fs: %q is not a number", text)
		}
		settings.FS = value
	case "fa":
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("field fa: %q is not a number", text)
		}
		settings.FA = value
	case "fn":
		value, err := strconv.Atoi(text)
		if err != nil {
			return fmt.Errorf("field fn: %q is not an integer", text)
		}
		settings.FN = value
	}
	return nil
}

// render stages the upload in a scratch directory, runs the external
// renderer, and returns the produced STL.
func (s *Server) render(ctx context.Context, req renderRequest) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "partgen-render-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	svgPath := filepath.Join(tmpDir, "input.svg")
	stlPath := filepath.Join(tmpDir, "output.stl")
	if err := os.WriteFile(svgPath, req.svg, 0o600); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.cfg.RenderTimeout)
	defer cancel()

	job := invoke.Job{
		Quality:    req.quality,
		Params:     req.instance,
		InputPath:  svgPath,
		OutputPath: stlPath,
		EntryPath:  s.cfg.EntryPath,
	}
	if err := s.cfg.Runner.Run(runCtx, job); err != nil {
		return nil, err
	}

	stl, err := os.ReadFile(stlPath)
	if err != nil {
		return nil, fmt.Errorf("read rendered STL: %w", err)
	}
	return stl, nil
}

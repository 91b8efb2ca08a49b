package server

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-partgen/pkg/invoke"
)

const fixtureSource = `COASTER_D = 80;        // @param coaster diameter in mm
MODE = "inlay";        // @param options: inlay | emboss
USE_SPINNER = false;   // @param
SVG_PATH = "logo.svg";
`

// fakeRunner records the job and writes a canned STL where openscad would.
type fakeRunner struct {
	job    invoke.Job
	stl    []byte
	failed bool
}

func (r *fakeRunner) Run(_ context.Context, job invoke.Job) error {
	r.job = job
	if r.failed {
		return os.ErrPermission
	}
	return os.WriteFile(job.OutputPath, r.stl, 0o600)
}

func newTestServer(t *testing.T, runner invoke.Runner) *Server {
	t.Helper()
	entry := filepath.Join(t.TempDir(), "main.scad")
	if err := os.WriteFile(entry, []byte(fixtureSource), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	srv, err := New(context.Background(), Config{
		Addr:      "127.0.0.1:0",
		EntryPath: entry,
		Runner:    runner,
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	part, err := writer.CreateFormFile("svg", "logo.svg")
	if err != nil {
		t.Fatalf("create file part: %v", err)
	}
	if _, err := part.Write([]byte("<svg></svg>")); err != nil {
		t.Fatalf("write file part: %v", err)
	}

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("write field %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return buf, writer.FormDataContentType()
}

func TestIndexServesForm(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{})
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`name="svg"`, `name="coaster_d"`, `name="mode"`} {
		if !strings.Contains(body, want) {
			t.Errorf("form missing %q", want)
		}
	}
	if strings.Contains(body, `name="svg_path"`) {
		t.Errorf("hidden parameter exposed on the form")
	}
}

func TestRenderHappyPath(t *testing.T) {
	runner := &fakeRunner{stl: []byte("solid partgen\nendsolid partgen\n")}
	srv := newTestServer(t, runner)

	body, contentType := multipartBody(t, map[string]string{
		"name":      "My Coaster",
		"coaster_d": "95",
		"mode":      "emboss",
		"fs":        "0.5",
	})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("render status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "model/stl" {
		t.Errorf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, `filename="My_Coaster.stl"`) {
		t.Errorf("content disposition = %q", got)
	}
	stl, _ := io.ReadAll(rec.Body)
	if !bytes.Equal(stl, runner.stl) {
		t.Errorf("response body is not the rendered STL")
	}

	args, err := runner.job.Args()
	if err != nil {
		t.Fatalf("recorded job args: %v", err)
	}
	joined := strings.Join(args, " ")
	for _, want := range []string{"fs=0.5", "COASTER_D=95", `MODE="emboss"`, "SVG_PATH="} {
		if !strings.Contains(joined, want) {
			t.Errorf("job args missing %q: %s", want, joined)
		}
	}
}

func TestRenderRejectsBadOverride(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{})

	body, contentType := multipartBody(t, map[string]string{
		"name":        "bad",
		"use_spinner": "perhaps",
	})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad boolean status = %d, want 400", rec.Code)
	}
}

func TestRenderIgnoresUnknownField(t *testing.T) {
	runner := &fakeRunner{stl: []byte("solid\n")}
	srv := newTestServer(t, runner)

	body, contentType := multipartBody(t, map[string]string{
		"name":     "widget",
		"mystery":  "42",
		"quantity": "9000",
	})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown field status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestRenderFailureIsInternalError(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{failed: true})

	body, contentType := multipartBody(t, map[string]string{"name": "x"})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("runner failure status = %d, want 500", rec.Code)
	}
}

func TestRenderWithoutUploadFails(t *testing.T) {
	srv := newTestServer(t, &fakeRunner{})

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	if err := writer.WriteField("name", "no-file"); err != nil {
		t.Fatalf("write field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/render", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing upload status = %d, want 400", rec.Code)
	}
}

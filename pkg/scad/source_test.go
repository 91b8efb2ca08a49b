package scad

import "testing"

func TestSourceFromFile(t *testing.T) {
	src := SourceFromFile("models/./main.scad")
	if src.Kind() != SourceKindFile {
		t.Errorf("kind = %q, want %q", src.Kind(), SourceKindFile)
	}
	if src.Location() != "models/main.scad" {
		t.Errorf("location = %q, want cleaned path", src.Location())
	}
}

func TestSourceFromFS(t *testing.T) {
	src := SourceFromFS("model/main.scad")
	if src.Kind() != SourceKindFS {
		t.Errorf("kind = %q, want %q", src.Kind(), SourceKindFS)
	}
	if src.Location() != "model/main.scad" {
		t.Errorf("location = %q", src.Location())
	}
}

func TestNewDocumentRequiresSource(t *testing.T) {
	if _, err := NewDocument(nil, "", nil); err == nil {
		t.Errorf("nil source accepted")
	}
}

func TestDocumentVisitedIsACopy(t *testing.T) {
	visited := []string{"a.scad", "b.scad"}
	doc, err := NewDocument(SourceFromFile("a.scad"), "A = 1;\n", visited)
	if err != nil {
		t.Fatalf("new document: %v", err)
	}

	got := doc.Visited()
	got[0] = "mutated"
	if doc.Visited()[0] != "a.scad" {
		t.Errorf("visited list aliases internal state")
	}
}

func TestExtractorOptionsNormalize(t *testing.T) {
	opts := ExtractorOptions{Marker: "@tweak"}.Normalize()
	if opts.Marker != "@tweak" {
		t.Errorf("marker = %q, explicit value overwritten", opts.Marker)
	}
	if opts.OptionsKey != "options:" || opts.ReservedPrefix != "$" {
		t.Errorf("defaults not filled: %+v", opts)
	}
}

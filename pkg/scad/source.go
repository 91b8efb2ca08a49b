package scad

import "path/filepath"

// Source identifies where a SCAD document tree is rooted so loaders can
// operate on disk paths or fs.FS entries without leaking implementation
// details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
)

// fileSource identifies an on-disk entry document.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to an entry document on disk.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references an entry document inside an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying an entry document inside an
// fs.FS. Includes resolve relative to the entry's directory within the same
// filesystem.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// Package loader resolves an entry .scad document plus everything it
// includes into a single text corpus.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-partgen/pkg/scad"
)

// include <foo.scad>; or use <foo.scad>;
var includeRe = regexp.MustCompile(`(?m)^\s*(?:include|use)\s*<([^>]+)>\s*;`)

// Loader implements scad.Loader for file and fs.FS sources.
type Loader struct {
	options scad.LoaderOptions
}

var _ scad.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options scad.LoaderOptions) *Loader {
	return &Loader{options: options}
}

// Load reads the entry document and recursively follows include/use
// directives. Each canonical path contributes text at most once, so cyclic
// and duplicate includes terminate naturally. A missing included document is
// skipped; only the entry document itself is required to exist.
func (l *Loader) Load(ctx context.Context, src scad.Source) (scad.Document, error) {
	if src == nil {
		return scad.Document{}, errors.New("scad loader: source is nil")
	}
	if err := ctx.Err(); err != nil {
		return scad.Document{}, err
	}

	switch src.Kind() {
	case scad.SourceKindFile:
		return l.loadFileTree(ctx, src)
	case scad.SourceKindFS:
		return l.loadFSTree(ctx, src)
	default:
		return scad.Document{}, fmt.Errorf("scad loader: unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) loadFileTree(ctx context.Context, src scad.Source) (scad.Document, error) {
	walk := &treeWalk{
		visited: make(map[string]struct{}),
		read: func(path string) (string, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		canonical: canonicalFilePath,
		exists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		join: filepath.Join,
		dir:  filepath.Dir,
	}

	if err := walk.gather(ctx, src.Location(), true); err != nil {
		return scad.Document{}, fmt.Errorf("scad loader: %w", err)
	}
	return scad.NewDocument(src, walk.corpus.String(), walk.order)
}

// canonicalFilePath resolves the absolute, symlink-free form of a path so
// the visited set catches the same document reached via different spellings.
func canonicalFilePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", path, err)
	}
	return resolved, nil
}

// treeWalk carries the depth-first include resolution state. The read,
// canonical, exists, join, and dir hooks abstract over os paths and fs.FS
// names so both source kinds share one traversal.
type treeWalk struct {
	visited   map[string]struct{}
	order     []string
	corpus    strings.Builder
	read      func(string) (string, error)
	canonical func(string) (string, error)
	exists    func(string) bool
	join      func(...string) string
	dir       func(string) string
}

func (w *treeWalk) gather(ctx context.Context, location string, entry bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	canon, err := w.canonical(location)
	if err != nil {
		if entry {
			return err
		}
		return nil
	}
	if _, seen := w.visited[canon]; seen {
		return nil
	}
	w.visited[canon] = struct{}{}

	text, err := w.read(canon)
	if err != nil {
		if entry {
			return fmt.Errorf("read %s: %w", canon, err)
		}
		return nil
	}
	w.order = append(w.order, canon)
	w.corpus.WriteString(text)
	w.corpus.WriteByte('\n')

	dir := w.dir(canon)
	for _, match := range includeRe.FindAllStringSubmatch(text, -1) {
		rel := strings.TrimSpace(match[1])
		if rel == "" {
			continue
		}
		target := w.join(dir, rel)
		if !w.exists(target) {
			// Optional includes are tolerated; the corpus just omits them.
			continue
		}
		if err := w.gather(ctx, target, false); err != nil {
			return err
		}
	}
	return nil
}

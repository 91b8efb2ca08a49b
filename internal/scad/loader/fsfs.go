package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/goliatone/go-partgen/pkg/scad"
)

func (l *Loader) loadFSTree(ctx context.Context, src scad.Source) (scad.Document, error) {
	fsys := l.options.FileSystem
	if fsys == nil {
		return scad.Document{}, errors.New("scad loader: filesystem is not configured")
	}

	walk := &treeWalk{
		visited: make(map[string]struct{}),
		read: func(name string) (string, error) {
			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		// fs.FS names have no symlink story; a cleaned path is canonical.
		canonical: func(name string) (string, error) {
			cleaned := path.Clean(name)
			if !fs.ValidPath(cleaned) {
				return "", errors.New("invalid fs path " + name)
			}
			return cleaned, nil
		},
		exists: func(name string) bool {
			_, err := fs.Stat(fsys, name)
			return err == nil
		},
		join: path.Join,
		dir:  path.Dir,
	}

	if err := walk.gather(ctx, src.Location(), true); err != nil {
		return scad.Document{}, fmt.Errorf("scad loader: %w", err)
	}
	return scad.NewDocument(src, walk.corpus.String(), walk.order)
}

// Package quality carries the engine-quality overrides (fs/fa/fn) that lead
// every render invocation, plus named presets loadable from YAML.
package quality

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var embeddedPresets embed.FS

// Settings are the engine-quality overrides passed ahead of any model
// parameter. Zero is a valid fn, so use DefaultSettings for the stock
// values.
type Settings struct {
	FS float64 `yaml:"fs"`
	FA float64 `yaml:"fa"`
	FN int     `yaml:"fn"`
}

// DefaultSettings mirrors the stock web-form values.
func DefaultSettings() Settings {
	return Settings{FS: 0.1, FA: 5, FN: 200}
}

// Fragments returns the quality override fragments in fixed fs, fa, fn
// order.
func (s Settings) Fragments() []string {
	return []string{
		"fs=" + strconv.FormatFloat(s.FS, 'f', -1, 64),
		"fa=" + strconv.FormatFloat(s.FA, 'f', -1, 64),
		"fn=" + strconv.Itoa(s.FN),
	}
}

type presetDocument struct {
	Presets map[string]Settings `yaml:"presets"`
}

// Store holds named quality presets.
type Store struct {
	presets map[string]Settings
}

// Get returns the preset registered under name.
func (s *Store) Get(name string) (Settings, bool) {
	if s == nil {
		return Settings{}, false
	}
	preset, ok := s.presets[name]
	return preset, ok
}

// Names returns the registered preset names in ascending order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EmbeddedStore loads the presets compiled into the binary.
func EmbeddedStore() (*Store, error) {
	return LoadFS(embeddedPresets)
}

// LoadFS walks the provided filesystem and parses every YAML preset file.
// Later files override earlier presets of the same name.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{presets: make(map[string]Settings)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isPresetFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("quality: read %s: %w", path, err)
		}

		var doc presetDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("quality: parse %s: %w", path, err)
		}
		for name, preset := range doc.Presets {
			store.presets[name] = preset
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func isPresetFile(path string) bool {
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

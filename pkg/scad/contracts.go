package scad

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-partgen/pkg/params"
)

// Loader resolves an entry document and its transitive includes into a
// single Document. Implementations live under internal/scad.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Extractor scans a Document's corpus for constant declarations and returns
// the discovered parameter specs in declaration order.
type Extractor interface {
	Extract(ctx context.Context, doc Document) ([]params.Spec, error)
}

// LoaderOptions carries the configuration honoured by the built-in loader.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources. Ignored for file sources.
	FileSystem fs.FS
}

// NewLoaderOptions returns the default loader configuration.
func NewLoaderOptions() LoaderOptions {
	return LoaderOptions{}
}

// ExtractorOptions carries the configuration honoured by the built-in
// extractor. Zero values fall back to the defaults below.
type ExtractorOptions struct {
	// Marker is the trailing-comment token that opts a declaration into
	// allow-list visibility mode.
	Marker string

	// OptionsKey introduces a choice list inside a trailing comment.
	OptionsKey string

	// ReservedPrefix excludes identifiers that configure the rendering
	// engine itself rather than the model.
	ReservedPrefix string
}

const (
	defaultMarker         = "@param"
	defaultOptionsKey     = "options:"
	defaultReservedPrefix = "$"
)

// NewExtractorOptions returns the default extractor configuration.
func NewExtractorOptions() ExtractorOptions {
	return ExtractorOptions{
		Marker:         defaultMarker,
		OptionsKey:     defaultOptionsKey,
		ReservedPrefix: defaultReservedPrefix,
	}
}

// Normalize fills unset fields with their defaults.
func (o ExtractorOptions) Normalize() ExtractorOptions {
	if o.Marker == "" {
		o.Marker = defaultMarker
	}
	if o.OptionsKey == "" {
		o.OptionsKey = defaultOptionsKey
	}
	if o.ReservedPrefix == "" {
		o.ReservedPrefix = defaultReservedPrefix
	}
	return o
}

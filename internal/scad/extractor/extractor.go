// Package extractor scans a resolved SCAD corpus for top-level constant
// declarations and turns them into typed parameter specs.
package extractor

import (
	"context"
	"regexp"
	"strings"

	"github.com/goliatone/go-partgen/pkg/params"
	"github.com/goliatone/go-partgen/pkg/scad"
)

// NAME = RHS;  // optional trailing comment
// The tail tolerates a carriage return so CRLF sources scan the same as LF.
var assignRe = regexp.MustCompile(`(?m)^\s*([A-Z][A-Z0-9_]*)\s*=\s*([^;]+);[ \t]*(?://[ \t]*(.*?))?\r?$`)

// Extractor implements scad.Extractor with a line-oriented pattern scan.
// Declarations are classified syntactically; right-hand sides are never
// evaluated, so an expression like CLEARANCE/2 is simply a Number.
type Extractor struct {
	options scad.ExtractorOptions
}

var _ scad.Extractor = (*Extractor)(nil)

// New constructs an Extractor with the given options.
func New(options scad.ExtractorOptions) *Extractor {
	return &Extractor{options: options.Normalize()}
}

// Extract returns the discovered specs in declaration order.
//
// Visibility is a corpus-wide property: the full corpus is scanned first,
// and only then are the UserAdjustable flags finalized. If any trailing
// comment carries the marker token the template enters allow-list mode and
// only marked declarations are adjustable; otherwise every declaration is.
func (e *Extractor) Extract(ctx context.Context, doc scad.Document) ([]params.Spec, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type raw struct {
		name    string
		rhs     string
		comment string
		marked  bool
	}

	var (
		raws      []raw
		anyMarked bool
	)
	for _, match := range assignRe.FindAllStringSubmatch(doc.Corpus(), -1) {
		name := match[1]
		if strings.HasPrefix(name, e.options.ReservedPrefix) {
			continue
		}
		comment := strings.TrimSpace(match[3])
		marked := strings.Contains(comment, e.options.Marker)
		if marked {
			anyMarked = true
		}
		raws = append(raws, raw{
			name:    name,
			rhs:     strings.TrimSpace(match[2]),
			comment: comment,
			marked:  marked,
		})
	}

	specs := make([]params.Spec, 0, len(raws))
	for _, r := range raws {
		adjustable := r.marked
		if !anyMarked {
			adjustable = true
		}
		specs = append(specs, params.Spec{
			Name:           r.name,
			Default:        r.rhs,
			Type:           inferType(r.rhs),
			UserAdjustable: adjustable,
			Comment:        r.comment,
			Options:        e.parseOptions(r.comment),
		})
	}
	return specs, nil
}

func inferType(rhs string) params.Type {
	if strings.HasPrefix(strings.TrimSpace(rhs), `"`) {
		return params.TypeString
	}
	switch strings.ToLower(strings.TrimSpace(rhs)) {
	case "true", "false":
		return params.TypeBool
	default:
		return params.TypeNumber
	}
}

// parseOptions pulls an ordered choice list out of a trailing comment, e.g.
//
//	// @param options: base|inlay|magnet|preview
//	// options: octagon, circle
func (e *Extractor) parseOptions(comment string) []string {
	if comment == "" {
		return nil
	}
	idx := strings.Index(strings.ToLower(comment), strings.ToLower(e.options.OptionsKey))
	if idx < 0 {
		return nil
	}

	rest := comment[idx+len(e.options.OptionsKey):]
	var options []string
	for _, piece := range strings.FieldsFunc(rest, func(r rune) bool {
		return r == '|' || r == ','
	}) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			options = append(options, piece)
		}
	}
	return options
}

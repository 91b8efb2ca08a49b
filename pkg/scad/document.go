package scad

import "errors"

// Document is the resolved text corpus for an entry document and every
// include it transitively pulled in. Each visited document contributes its
// text exactly once, in depth-first directive-occurrence order.
type Document struct {
	source  Source
	corpus  string
	visited []string
}

// NewDocument wraps a resolved corpus. The visited list records the
// canonical locations that contributed text, in contribution order.
func NewDocument(source Source, corpus string, visited []string) (Document, error) {
	if source == nil {
		return Document{}, errors.New("scad: document source is required")
	}
	return Document{
		source:  source,
		corpus:  corpus,
		visited: append([]string(nil), visited...),
	}, nil
}

// Source returns the entry source the corpus was resolved from.
func (d Document) Source() Source {
	return d.source
}

// Corpus returns the concatenated document text.
func (d Document) Corpus() string {
	return d.corpus
}

// Visited returns the canonical locations that contributed text, in the
// order they were concatenated.
func (d Document) Visited() []string {
	return append([]string(nil), d.visited...)
}

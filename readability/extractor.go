// Package readability provides a go-readability based implementation of
// docchunk.Extractor, the default heuristic for finding a page's main
// content.
package readability

import (
	"strings"

	"github.com/fwojciec/docchunk"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements docchunk.Extractor at compile time.
var _ docchunk.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to score and extract the article body
// from raw HTML, discarding navigation and boilerplate.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the best-guess title and a
// reduced HTML fragment containing the article body.
func (e *Extractor) Extract(rawHTML string) (*docchunk.ExtractResult, error) {
	if rawHTML == "" {
		return nil, docchunk.Errorf(docchunk.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &docchunk.ExtractResult{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}

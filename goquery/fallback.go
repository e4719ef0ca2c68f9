// Package goquery provides CSS-selector based implementations of the
// docchunk extraction interfaces.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchunk"
)

// fallbackSelectors are tried in priority order against the full page:
// MediaWiki main-content container, MediaWiki parser output, a generic
// <main> element, and finally the document body.
var fallbackSelectors = []string{"#mw-content-text", ".mw-parser-output", "main", "body"}

// Ensure FallbackExtractor implements docchunk.Extractor at compile time.
var _ docchunk.Extractor = (*FallbackExtractor)(nil)

// FallbackExtractor extracts content structurally from the full page
// HTML. It exists for portal and index pages that heuristic extractors
// misjudge: instead of scoring content blocks it selects a known
// container and returns it wholesale, minus scripts and vector graphics.
// It never produces a title.
type FallbackExtractor struct{}

// NewFallbackExtractor creates a new FallbackExtractor.
func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// Extract selects the first matching content container and returns its
// HTML with script/style/noscript/svg elements removed.
func (e *FallbackExtractor) Extract(html string) (*docchunk.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docchunk.Errorf(docchunk.EINVALID, "failed to parse HTML: %v", err)
	}

	for _, selector := range fallbackSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}

		sel.Find("script, style, noscript, svg").Remove()

		contentHTML, err := goquery.OuterHtml(sel)
		if err != nil {
			return nil, err
		}
		return &docchunk.ExtractResult{ContentHTML: contentHTML}, nil
	}

	return &docchunk.ExtractResult{}, nil
}

package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docchunk"
)

// Ensure LinkExtractor implements docchunk.LinkExtractor at compile time.
var _ docchunk.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts hyperlink targets from HTML for crawl
// discovery. Links are returned in document order, deduplicated, with
// relative targets resolved against the page URL.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns every resolvable hyperlink target in the HTML.
func (l *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docchunk.Errorf(docchunk.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docchunk.Errorf(docchunk.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()

		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links, nil
}

// isNonHTTPLink reports whether the href uses a scheme that cannot be
// fetched (javascript:, mailto:, tel:, data:).
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	for _, prefix := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

package docchunk

import (
	"context"
	"strings"
)

// Page represents a single fetched page. It is transient: created per
// fetch and consumed immediately by content extraction.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// IsHTML reports whether the page's content type indicates an HTML document.
func (p *Page) IsHTML() bool {
	return strings.Contains(p.ContentType, "text/html") ||
		strings.Contains(p.ContentType, "application/xhtml+xml")
}

// Fetcher retrieves pages from URLs. Implementations follow redirects and
// attach any configured headers and cookies. Transport failures are
// returned as errors; non-2xx responses are returned as pages so the
// caller can inspect the status code.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close releases any underlying resources.
	Close() error
}

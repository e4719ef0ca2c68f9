package docchunk

import "context"

// Frontier manages the ordered set of URLs still to be visited. A single
// abstraction covers both discovery modes: a sitemap-seeded frontier is
// filled once and never offered new URLs, while a seed frontier grows as
// links are discovered during the crawl.
type Frontier interface {
	// Offer appends a URL to the queue. Returns false if the URL has
	// already been seen or the queue is at capacity.
	Offer(url string) bool

	// Next returns the next URL in FIFO order.
	// The bool result is false if the frontier is empty.
	Next() (string, bool)

	// Len returns the number of URLs waiting in the queue.
	Len() int

	// Seen reports whether the URL has been queued or visited.
	Seen(url string) bool
}

// SitemapService discovers URLs from a site's sitemap.
type SitemapService interface {
	// DiscoverURLs returns the deduplicated, sorted URLs listed by the
	// site's sitemap, resolving sitemap indexes into their children.
	// A site without a usable sitemap yields an empty slice, not an error.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// LinkExtractor extracts hyperlink targets from HTML.
type LinkExtractor interface {
	// ExtractLinks returns every hyperlink target in document order,
	// resolved against baseURL. Non-HTTP schemes (javascript:, mailto:)
	// are skipped.
	ExtractLinks(html, baseURL string) ([]string, error)
}

package http

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/docchunk"
)

// sitemapCandidates are the well-known sitemap locations, tried in order.
var sitemapCandidates = []string{"/sitemap.xml", "/sitemap_index.xml"}

// Ensure SitemapService implements docchunk.SitemapService.
var _ docchunk.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps. It tries
// /sitemap.xml then /sitemap_index.xml at the base origin and stops at
// the first usable response (status 200 with an XML content type). A
// sitemap index is resolved by fetching every child sitemap and merging
// their URL sets.
type SitemapService struct {
	fetcher docchunk.Fetcher
}

// NewSitemapService creates a SitemapService that fetches sitemaps
// through the given fetcher, so authentication and headers configured
// for page fetching apply to sitemap retrieval as well.
func NewSitemapService(fetcher docchunk.Fetcher) *SitemapService {
	return &SitemapService{fetcher: fetcher}
}

// DiscoverURLs finds all URLs listed by the site's sitemap. The result
// is deduplicated and sorted for determinism. A site with no usable
// sitemap yields an empty slice, not an error.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docchunk.Errorf(docchunk.EINVALID, "invalid base URL: %v", err)
	}

	for _, candidate := range sitemapCandidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		loc := base.ResolveReference(&url.URL{Path: candidate})
		page, err := s.fetcher.Fetch(ctx, loc.String())
		if err != nil {
			continue
		}
		if page.StatusCode != 200 || !strings.Contains(page.ContentType, "xml") {
			continue
		}

		urls, ok := s.parseSitemap(ctx, page.Body)
		if !ok {
			continue
		}
		return dedupeSorted(urls), nil
	}

	return []string{}, nil
}

// parseSitemap parses a sitemap document. For a urlset the contained
// locs are returned directly; for a sitemapindex every child sitemap is
// fetched and the child locs merged. The bool result is false when the
// document is not a recognizable sitemap.
func (s *SitemapService) parseSitemap(ctx context.Context, body string) ([]string, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return nil, false
	}
	root := doc.Root()
	if root == nil {
		return nil, false
	}

	switch root.Tag {
	case "urlset":
		return collectLocs(root), true
	case "sitemapindex":
		var all []string
		for _, child := range collectLocs(root) {
			if err := ctx.Err(); err != nil {
				return all, true
			}
			page, err := s.fetcher.Fetch(ctx, child)
			if err != nil || page.StatusCode != 200 {
				continue
			}
			childDoc := etree.NewDocument()
			if err := childDoc.ReadFromString(page.Body); err != nil {
				continue
			}
			if childRoot := childDoc.Root(); childRoot != nil {
				all = append(all, collectLocs(childRoot)...)
			}
		}
		return all, true
	default:
		return nil, false
	}
}

// collectLocs returns the trimmed text of every <loc> element below root.
func collectLocs(root *etree.Element) []string {
	var locs []string
	for _, el := range root.FindElements(".//loc") {
		if text := strings.TrimSpace(el.Text()); text != "" {
			locs = append(locs, text)
		}
	}
	return locs
}

func dedupeSorted(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	sort.Strings(out)
	return out
}

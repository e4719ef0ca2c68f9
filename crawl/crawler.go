// Package crawl provides documentation crawling orchestration. It
// coordinates URL discovery, paced fetching, content extraction, and
// chunk persistence for a single documentation site.
package crawl

import (
	"context"
	"net/http"

	"github.com/fwojciec/docchunk"
)

// DefaultMaxPages bounds a crawl when no explicit page cap is given.
const DefaultMaxPages = 5000

// Crawler orchestrates the crawling of a documentation site. Pages are
// visited strictly one at a time; the Pacer spaces requests out so the
// remote server sees a uniform, polite request rate.
type Crawler struct {
	Sitemaps docchunk.SitemapService
	Fetcher  docchunk.Fetcher
	Links    docchunk.LinkExtractor
	Content  *docchunk.ContentExtractor
	Chunks   docchunk.ChunkWriter
	Pacer    *Pacer
	Rules    *docchunk.PathRules

	// Source labels every chunk's provenance metadata.
	Source string

	// MaxPages caps the number of URLs visited. Zero means DefaultMaxPages.
	MaxPages int

	// MinContent is the minimum markdown length for a page to produce
	// chunks. Zero means docchunk.DefaultFallbackThreshold.
	MinContent int

	// ChunkOpts bounds chunk sizes. The zero value means
	// docchunk.DefaultChunkOptions.
	ChunkOpts docchunk.ChunkOptions
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Visited int // URLs fetched (or attempted)
	Skipped int // visited URLs that produced no chunks
	Pages   int // pages that produced at least one chunk
	Chunks  int // chunks written
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Queued    int
	URL       string
	Chunks    int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl visits the documentation site rooted at baseURL and writes the
// resulting chunks. URLs come from the site's sitemap when one exists;
// otherwise the crawl seeds from baseURL and follows in-scope links as
// it goes. Every URL is visited at most once and failures on individual
// pages never abort the crawl. Chunk writer failures are fatal: a broken
// output sink makes further fetching pointless.
func (c *Crawler) Crawl(ctx context.Context, baseURL string, progress ProgressFunc) (*Result, error) {
	base, err := docchunk.Normalize(baseURL)
	if err != nil {
		return nil, err
	}

	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	minContent := c.MinContent
	if minContent <= 0 {
		minContent = docchunk.DefaultFallbackThreshold
	}
	opts := c.ChunkOpts
	defaults := docchunk.DefaultChunkOptions()
	if opts.MinTokens <= 0 {
		opts.MinTokens = defaults.MinTokens
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaults.MaxTokens
	}

	urls, err := c.Sitemaps.DiscoverURLs(ctx, base)
	if err != nil {
		return nil, err
	}

	frontier := NewFrontier(maxPages)
	discover := len(urls) == 0
	if discover {
		// No sitemap: seed with the base URL and follow links.
		frontier.Offer(base)
	} else {
		for _, u := range urls {
			c.offer(frontier, u, base)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:   ProgressStarted,
			Queued: frontier.Len(),
		})
	}

	result := &Result{}
	for {
		url, ok := frontier.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := c.Pacer.Wait(ctx); err != nil {
			return result, err
		}

		result.Visited++

		page, err := c.Fetcher.Fetch(ctx, url)
		if err != nil {
			c.skip(result, progress, frontier, url, err)
			continue
		}
		if page.StatusCode != http.StatusOK || !page.IsHTML() {
			c.skip(result, progress, frontier, url, docchunk.Errorf(docchunk.ENOTFOUND, "status %d, content type %q", page.StatusCode, page.ContentType))
			continue
		}

		// In discovery mode every visited page can widen the frontier.
		if discover && c.Links != nil {
			if links, err := c.Links.ExtractLinks(page.Body, url); err == nil {
				for _, link := range links {
					c.offer(frontier, link, base)
				}
			}
		}

		content, err := c.Content.Extract(page.Body)
		if err != nil {
			c.skip(result, progress, frontier, url, err)
			continue
		}
		if len(content.Markdown) < minContent {
			c.skip(result, progress, frontier, url, docchunk.Errorf(docchunk.ENOTFOUND, "no viable content (%d chars)", len(content.Markdown)))
			continue
		}

		sections := docchunk.SplitSections(content.Markdown)
		chunks := docchunk.ChunkSections(sections, docchunk.PageMeta{
			Source: c.Source,
			URL:    url,
			Title:  content.Title,
		}, opts)

		for i := range chunks {
			if err := c.Chunks.WriteChunk(ctx, &chunks[i]); err != nil {
				return result, err
			}
		}

		result.Pages++
		result.Chunks += len(chunks)
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: result.Visited,
				Queued:    frontier.Len(),
				URL:       url,
				Chunks:    len(chunks),
			})
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: result.Visited,
		})
	}

	return result, nil
}

// offer normalizes a candidate URL and queues it if it survives scope
// and path filtering.
func (c *Crawler) offer(frontier *Frontier, raw, base string) {
	u, err := docchunk.Normalize(raw)
	if err != nil {
		return
	}
	if !docchunk.InScope(u, base) {
		return
	}
	if !c.Rules.Allowed(u) {
		return
	}
	frontier.Offer(u)
}

// skip records a URL that was visited but produced no chunks.
func (c *Crawler) skip(result *Result, progress ProgressFunc, frontier *Frontier, url string, err error) {
	result.Skipped++
	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressSkipped,
			Completed: result.Visited,
			Queued:    frontier.Len(),
			URL:       url,
			Error:     err,
		})
	}
}

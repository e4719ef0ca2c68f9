package crawl_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fwojciec/docchunk"
	"github.com/fwojciec/docchunk/crawl"
	"github.com/fwojciec/docchunk/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://docs.example.com/"

// htmlPage builds a successful HTML response.
func htmlPage(url, body string) *docchunk.Page {
	return &docchunk.Page{
		URL:         url,
		StatusCode:  200,
		ContentType: "text/html; charset=utf-8",
		Body:        body,
	}
}

// testHarness wires a Crawler to mocks that serve canned pages and
// record every chunk written.
type testHarness struct {
	crawler  *crawl.Crawler
	pages    map[string]*docchunk.Page
	links    map[string][]string
	fetched  []string
	written  []docchunk.Chunk
	sitemaps []string
}

func newHarness(t *testing.T) *testHarness {
	t.Helper()

	h := &testHarness{
		pages: make(map[string]*docchunk.Page),
		links: make(map[string][]string),
	}

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docchunk.Page, error) {
			h.fetched = append(h.fetched, url)
			page, ok := h.pages[url]
			if !ok {
				return nil, fmt.Errorf("connection refused: %s", url)
			}
			return page, nil
		},
	}
	sitemaps := &mock.SitemapService{
		DiscoverURLsFn: func(ctx context.Context, baseURL string) ([]string, error) {
			return h.sitemaps, nil
		},
	}
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(html, baseURL string) ([]string, error) {
			return h.links[baseURL], nil
		},
	}
	writer := &mock.ChunkWriter{
		WriteChunkFn: func(ctx context.Context, chunk *docchunk.Chunk) error {
			h.written = append(h.written, *chunk)
			return nil
		},
	}
	content := &docchunk.ContentExtractor{
		Chain: []docchunk.Extractor{&mock.Extractor{
			ExtractFn: func(html string) (*docchunk.ExtractResult, error) {
				return &docchunk.ExtractResult{Title: "Guide", ContentHTML: html}, nil
			},
		}},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) { return html, nil },
		},
		FallbackThreshold: 1,
	}

	h.crawler = &crawl.Crawler{
		Sitemaps:   sitemaps,
		Fetcher:    fetcher,
		Links:      links,
		Content:    content,
		Chunks:     writer,
		Rules:      docchunk.DefaultPathRules(),
		Source:     "example-docs",
		MinContent: 1,
	}
	return h
}

func TestCrawler_sitemap_mode_visits_only_in_scope_URLs(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{
		testBase + "install",
		testBase + "usage",
		"https://other.example.com/page",
		testBase + "wiki/Special:RecentChanges",
		testBase + "extensions/skin.css",
	}
	h.pages[testBase+"install"] = htmlPage(testBase+"install", "# Install\n\nRun make.")
	h.pages[testBase+"usage"] = htmlPage(testBase+"usage", "# Usage\n\nRun it.")

	result, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{testBase + "install", testBase + "usage"}, h.fetched)
	assert.Equal(t, 2, result.Visited)
	assert.Equal(t, 2, result.Pages)
	assert.Equal(t, 0, result.Skipped)
}

func TestCrawler_sitemap_mode_does_not_follow_links(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{testBase + "install"}
	h.pages[testBase+"install"] = htmlPage(testBase+"install", "# Install\n\nRun make.")
	h.links[testBase+"install"] = []string{testBase + "usage"}
	h.pages[testBase+"usage"] = htmlPage(testBase+"usage", "# Usage\n\nRun it.")

	result, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{testBase + "install"}, h.fetched, "sitemap URLs are authoritative")
	assert.Equal(t, 1, result.Visited)
}

func TestCrawler_seed_mode_follows_links_once(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.pages[testBase] = htmlPage(testBase, "# Home\n\nWelcome to the docs.")
	h.pages[testBase+"a"] = htmlPage(testBase+"a", "# A\n\nPage a.")
	h.pages[testBase+"b"] = htmlPage(testBase+"b", "# B\n\nPage b.")
	h.links[testBase] = []string{
		testBase + "a",
		testBase + "a", // duplicate
		testBase + "b#install",
		"https://other.example.com/elsewhere",
		testBase + "wiki/Special:Search",
	}
	h.links[testBase+"a"] = []string{testBase} // link back to a visited page
	h.links[testBase+"b"] = []string{testBase + "a"}

	result, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	// The fragment link is normalized to /b, duplicates and out-of-scope
	// links are dropped, and no URL is fetched twice.
	assert.Equal(t, []string{testBase, testBase + "a", testBase + "b"}, h.fetched)
	assert.Equal(t, 3, result.Visited)
	assert.Equal(t, 3, result.Pages)
}

func TestCrawler_seed_mode_respects_page_cap(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.crawler.MaxPages = 3
	h.pages[testBase] = htmlPage(testBase, "# Home\n\nWelcome.")
	for i := 0; i < 10; i++ {
		url := fmt.Sprintf("%spage/%d", testBase, i)
		h.pages[url] = htmlPage(url, fmt.Sprintf("# Page %d\n\nContent.", i))
		h.links[testBase] = append(h.links[testBase], url)
	}

	result, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Visited, "cap bounds total URLs visited")
	assert.Len(t, h.fetched, 3)
}

func TestCrawler_skips_failures_without_aborting(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{
		testBase + "missing",  // 404
		testBase + "asset",    // wrong content type
		testBase + "down",     // transport error (no canned page)
		testBase + "sparse",   // content below the viability threshold
		testBase + "good",
	}
	h.crawler.MinContent = 20
	h.crawler.Content.FallbackThreshold = 20
	h.pages[testBase+"missing"] = &docchunk.Page{URL: testBase + "missing", StatusCode: 404, ContentType: "text/html", Body: "gone"}
	h.pages[testBase+"asset"] = &docchunk.Page{URL: testBase + "asset", StatusCode: 200, ContentType: "application/pdf", Body: "%PDF"}
	h.pages[testBase+"sparse"] = htmlPage(testBase+"sparse", "stub")
	h.pages[testBase+"good"] = htmlPage(testBase+"good", "# Good\n\nPlenty of real content here.")

	result, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	assert.Equal(t, 5, result.Visited)
	assert.Equal(t, 4, result.Skipped)
	assert.Equal(t, 1, result.Pages)
	require.NotEmpty(t, h.written)
	for _, chunk := range h.written {
		assert.Equal(t, testBase+"good", chunk.Metadata.URL)
	}
}

func TestCrawler_writes_chunks_with_provenance(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{testBase + "install"}
	h.pages[testBase+"install"] = htmlPage(testBase+"install", "# Install\n\nRun make install.")

	_, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	require.Len(t, h.written, 1)
	chunk := h.written[0]
	assert.Len(t, chunk.ID, 16)
	assert.Equal(t, "example-docs", chunk.Metadata.Source)
	assert.Equal(t, testBase+"install", chunk.Metadata.URL)
	assert.Equal(t, "Guide", chunk.Metadata.Title)
	assert.Equal(t, "Guide > Install", chunk.Metadata.SectionPath)
	assert.Contains(t, chunk.Text, "Run make install.")
}

func TestCrawler_chunk_writer_failure_aborts(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{testBase + "a", testBase + "b"}
	h.pages[testBase+"a"] = htmlPage(testBase+"a", "# A\n\nPage a.")
	h.pages[testBase+"b"] = htmlPage(testBase+"b", "# B\n\nPage b.")
	h.crawler.Chunks = &mock.ChunkWriter{
		WriteChunkFn: func(ctx context.Context, chunk *docchunk.Chunk) error {
			return errors.New("disk full")
		},
	}

	_, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, []string{testBase + "a"}, h.fetched, "crawl should stop at the first write failure")
}

func TestCrawler_rejects_invalid_base_URL(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	_, err := h.crawler.Crawl(context.Background(), "http://[::1%en0/", nil)
	require.Error(t, err)
	assert.Equal(t, docchunk.EINVALID, docchunk.ErrorCode(err))
}

func TestCrawler_reports_progress(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{testBase + "good", testBase + "missing"}
	h.pages[testBase+"good"] = htmlPage(testBase+"good", "# Good\n\nReal content.")
	h.pages[testBase+"missing"] = &docchunk.Page{URL: testBase + "missing", StatusCode: 404, ContentType: "text/html", Body: "gone"}

	var events []crawl.ProgressEvent
	_, err := h.crawler.Crawl(context.Background(), testBase, func(event crawl.ProgressEvent) {
		events = append(events, event)
	})
	require.NoError(t, err)

	require.Len(t, events, 4)
	assert.Equal(t, crawl.ProgressStarted, events[0].Type)
	assert.Equal(t, 2, events[0].Queued)
	assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
	assert.Equal(t, testBase+"good", events[1].URL)
	assert.Equal(t, 1, events[1].Chunks)
	assert.Equal(t, crawl.ProgressSkipped, events[2].Type)
	assert.Equal(t, testBase+"missing", events[2].URL)
	assert.Error(t, events[2].Error)
	assert.Equal(t, crawl.ProgressFinished, events[3].Type)
	assert.Equal(t, 2, events[3].Completed)
}

func TestCrawler_canceled_context_stops_the_crawl(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sitemaps = []string{testBase + "a", testBase + "b"}
	h.pages[testBase+"a"] = htmlPage(testBase+"a", "# A\n\nPage a.")
	h.pages[testBase+"b"] = htmlPage(testBase+"b", "# B\n\nPage b.")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := h.crawler.Crawl(ctx, testBase, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, result.Visited)
	assert.Empty(t, h.fetched)
}

func TestCrawler_sparse_page_chunk_isolation(t *testing.T) {
	t.Parallel()

	// A page whose sections are individually small still produces chunks
	// bounded by the configured band.
	h := newHarness(t)
	h.crawler.ChunkOpts = docchunk.ChunkOptions{MinTokens: 250, MaxTokens: 900}

	var sb strings.Builder
	sb.WriteString("# Overview\n\n")
	sb.WriteString(strings.Repeat("alpha ", 120)) // ~180 tokens
	sb.WriteString("\n\n## Details\n\n")
	sb.WriteString(strings.Repeat("bravo ", 200)) // ~300 tokens

	h.sitemaps = []string{testBase + "page"}
	h.pages[testBase+"page"] = htmlPage(testBase+"page", sb.String())

	_, err := h.crawler.Crawl(context.Background(), testBase, nil)
	require.NoError(t, err)

	require.NotEmpty(t, h.written)
	for _, chunk := range h.written {
		assert.LessOrEqual(t, docchunk.EstimateTokens(chunk.Text), 900)
		assert.NotEmpty(t, chunk.Text)
	}
}

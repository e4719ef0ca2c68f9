// Package mock provides function-field mock implementations of docchunk
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/docchunk"
)

var _ docchunk.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docchunk.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*docchunk.Page, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*docchunk.Page, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docchunk.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of docchunk.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*docchunk.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*docchunk.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ docchunk.Converter = (*Converter)(nil)

// Converter is a mock implementation of docchunk.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docchunk.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docchunk.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}

var _ docchunk.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of docchunk.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html, baseURL string) ([]string, error)
}

func (l *LinkExtractor) ExtractLinks(html, baseURL string) ([]string, error) {
	return l.ExtractLinksFn(html, baseURL)
}

var _ docchunk.ChunkWriter = (*ChunkWriter)(nil)

// ChunkWriter is a mock implementation of docchunk.ChunkWriter.
type ChunkWriter struct {
	WriteChunkFn func(ctx context.Context, chunk *docchunk.Chunk) error
}

func (w *ChunkWriter) WriteChunk(ctx context.Context, chunk *docchunk.Chunk) error {
	return w.WriteChunkFn(ctx, chunk)
}

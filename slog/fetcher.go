// Package slog provides log/slog based logging decorators for docchunk
// services. The decorators emit the crawl's diagnostic side channel;
// nothing here is part of the durable output contract.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docchunk"
)

// Ensure LoggingFetcher implements docchunk.Fetcher.
var _ docchunk.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher and logs one diagnostic line per fetch:
// URL, status, content type, body length, and duration.
type LoggingFetcher struct {
	next   docchunk.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docchunk.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *docchunk.Page, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch failed",
				"url", url,
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Info("fetched",
			"url", url,
			"status", page.StatusCode,
			"content_type", page.ContentType,
			"bytes", len(page.Body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

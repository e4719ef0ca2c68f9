package main

import (
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/docchunk/crawl"
)

// newProgress returns a progress callback and a cleanup function. The
// default rendering is a spinner with a live status suffix; verbose mode
// prints a line per skipped page instead and leaves fetch reporting to
// the logging fetcher.
func newProgress(w io.Writer, verbose bool) (crawl.ProgressFunc, func()) {
	if verbose {
		return func(event crawl.ProgressEvent) {
			if event.Type == crawl.ProgressSkipped {
				fmt.Fprintf(w, "skip %s: %v\n", event.URL, event.Error)
			}
		}, func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))

	return func(event crawl.ProgressEvent) {
			switch event.Type {
			case crawl.ProgressStarted:
				s.Suffix = fmt.Sprintf(" crawling (%d queued)", event.Queued)
				s.Start()
			case crawl.ProgressCompleted, crawl.ProgressSkipped:
				s.Suffix = fmt.Sprintf(" [%d visited, %d queued] %s",
					event.Completed, event.Queued, truncateURL(event.URL, 40))
			case crawl.ProgressFinished:
				s.Stop()
			}
		}, func() {
			s.Stop()
		}
}

// truncateURL shortens a URL for display by showing only the path.
// This makes progress more useful when many URLs share the same host prefix.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}

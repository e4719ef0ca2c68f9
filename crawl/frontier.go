package crawl

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/docchunk"
)

// Bloom filter sizing for URL deduplication.
const (
	frontierExpectedURLs      = 10000
	frontierFalsePositiveRate = 0.01
)

// Compile-time interface verification.
var _ docchunk.Frontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with Bloom-filter
// deduplication. The Bloom filter can produce false positives (a fresh
// URL reported as seen) but never false negatives, so the no-refetch
// guarantee holds unconditionally at the cost of occasionally dropping
// a URL. The crawl owns the frontier from a single goroutine; it is not
// safe for concurrent use.
type Frontier struct {
	seen     *bloom.BloomFilter
	queue    []string
	enqueued int
	limit    int
}

// NewFrontier creates a Frontier that accepts at most limit URLs over
// its lifetime. A limit of zero or less means unbounded.
func NewFrontier(limit int) *Frontier {
	return &Frontier{
		seen:  bloom.NewWithEstimates(frontierExpectedURLs, frontierFalsePositiveRate),
		limit: limit,
	}
}

// Offer appends a URL to the queue. Returns false if the URL has
// already been seen or the lifetime limit is reached. Callers are
// expected to pass normalized URLs.
func (f *Frontier) Offer(url string) bool {
	if f.limit > 0 && f.enqueued >= f.limit {
		return false
	}
	if f.seen.TestString(url) {
		return false
	}
	f.seen.AddString(url)
	f.queue = append(f.queue, url)
	f.enqueued++
	return true
}

// Next returns the next URL in FIFO order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Next() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	return len(f.queue)
}

// Seen reports whether the URL has been queued or visited.
func (f *Frontier) Seen(url string) bool {
	return f.seen.TestString(url)
}

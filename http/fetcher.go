// Package http provides HTTP-based implementations of the docchunk
// fetching and sitemap discovery interfaces.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/fwojciec/docchunk"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default per-request timeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the crawler to remote servers.
const DefaultUserAgent = "docchunk/1.0"

// Ensure Fetcher implements docchunk.Fetcher at compile time.
var _ docchunk.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over HTTP. Redirects are followed, cookies are
// kept in a publicsuffix-aware jar, and every request carries the
// configured User-Agent and optional raw Cookie header. Non-2xx
// responses are not errors: the caller inspects the status code.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	cookieHeader string
	cookies      []*http.Cookie
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithCookieHeader sets a raw Cookie header value sent with every request.
func WithCookieHeader(value string) Option {
	return func(f *Fetcher) {
		f.cookieHeader = value
	}
}

// WithCookies seeds the cookie jar, e.g. from a Netscape cookie file
// loaded with LoadCookieFile. Each cookie must carry its Domain.
func WithCookies(cookies []*http.Cookie) Option {
	return func(f *Fetcher) {
		f.cookies = cookies
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	seedJar(jar, f.cookies)

	f.client = &http.Client{
		Jar:     jar,
		Timeout: f.timeout,
	}

	return f, nil
}

// seedJar distributes preloaded cookies into the jar by domain.
func seedJar(jar http.CookieJar, cookies []*http.Cookie) {
	byDomain := make(map[string][]*http.Cookie)
	for _, c := range cookies {
		if c.Domain == "" {
			continue
		}
		byDomain[c.Domain] = append(byDomain[c.Domain], c)
	}
	for domain, cs := range byDomain {
		scheme := "https"
		if !cs[0].Secure {
			scheme = "http"
		}
		u := &url.URL{Scheme: scheme, Host: domain, Path: "/"}
		jar.SetCookies(u, cs)
	}
}

// Fetch retrieves the page at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*docchunk.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, docchunk.Errorf(docchunk.EINVALID, "invalid request URL %q: %v", rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if f.cookieHeader != "" {
		req.Header.Set("Cookie", f.cookieHeader)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &docchunk.Page{
		URL:         rawURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        string(body),
	}, nil
}

// Close releases resources. The underlying http.Client needs no explicit
// cleanup.
func (f *Fetcher) Close() error {
	return nil
}

package docchunk

import (
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL by stripping its fragment component.
// Scheme, host, path, and query are preserved; documentation systems
// sometimes encode page identity in query parameters, so the query must
// survive normalization. Normalization is idempotent.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// InScope reports whether raw has the same scheme and host as base.
// Unparseable URLs are out of scope.
func InScope(raw, base string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	b, err := url.Parse(base)
	if err != nil {
		return false
	}
	return u.Scheme == b.Scheme && u.Host == b.Host
}

// PathRules rejects URLs whose paths point at known non-content areas,
// such as wiki special namespaces and asset directories.
type PathRules struct {
	// DisallowContains rejects paths containing any of these substrings.
	DisallowContains []string

	// DisallowPrefixes rejects paths starting with any of these prefixes.
	DisallowPrefixes []string
}

// DefaultPathRules returns the default exclusion rules: MediaWiki special
// pages and extension asset directories.
func DefaultPathRules() *PathRules {
	return &PathRules{
		DisallowContains: []string{"Special:"},
		DisallowPrefixes: []string{"/extensions/"},
	}
}

// Allowed reports whether the URL's path passes the exclusion rules.
// Unparseable URLs are not allowed. A nil PathRules allows everything.
func (r *PathRules) Allowed(raw string) bool {
	if r == nil {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, s := range r.DisallowContains {
		if strings.Contains(u.Path, s) {
			return false
		}
	}
	for _, p := range r.DisallowPrefixes {
		if strings.HasPrefix(u.Path, p) {
			return false
		}
	}
	return true
}

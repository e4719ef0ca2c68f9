// Package docchunk turns a live documentation site into a corpus of
// bounded-size text passages. It crawls a site (sitemap-first, with
// recursive link discovery as fallback), extracts the main content of
// each page as markdown, and splits it into heading-aware chunks with
// provenance metadata, streamed to line-delimited output.
//
// This package contains domain types, pure algorithms, and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live
// in subdirectories named after their primary dependency (e.g., http/,
// goquery/, sqlite/).
package docchunk

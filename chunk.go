package docchunk

import (
	"context"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Chunk is the durable output unit: a bounded-size passage of extracted
// text with provenance metadata.
type Chunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// ChunkMetadata identifies where a chunk came from.
type ChunkMetadata struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	SectionPath string `json:"section_path"`
}

// ChunkWriter persists chunks. Each write is durable independently so an
// interrupted run leaves only complete records behind.
type ChunkWriter interface {
	WriteChunk(ctx context.Context, chunk *Chunk) error
}

// ChunkID computes the stable identifier for a (url, text) pair: the
// xxHash64 of url + "\n" + text as 16 lowercase hex digits. Identical
// inputs always yield the same ID, so re-runs produce recognizably
// identical records.
func ChunkID(url, text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(url+"\n"+text))
}

// PageMeta carries per-page provenance attached to every chunk built
// from that page.
type PageMeta struct {
	Source string
	URL    string
	Title  string
}

// ChunkOptions bounds chunk size in approximate tokens.
type ChunkOptions struct {
	MinTokens int
	MaxTokens int
}

// DefaultChunkOptions returns the default size band.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{MinTokens: 250, MaxTokens: 900}
}

// ChunkSections merges an ordered section list into chunks whose token
// estimate lies within the configured band. Sections are accumulated
// greedily in order:
//
//   - an empty buffer is seeded with the current section;
//   - if appending would exceed MaxTokens, the buffer is flushed first
//     (a small chunk beats an oversized one) and the section seeds a new
//     buffer;
//   - otherwise the section is appended, separated by a blank line, and
//     the buffer keeps the first non-empty section path it has seen;
//   - a buffer that reaches MinTokens after an append is flushed
//     immediately, keeping chunks near the minimum rather than growing
//     toward the maximum.
//
// A single section larger than MaxTokens is emitted whole; chunking
// never splits inside a section.
func ChunkSections(sections []Section, meta PageMeta, opts ChunkOptions) []Chunk {
	var chunks []Chunk
	var buf string
	var bufPath []string

	flush := func(text string, path []string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		chunks = append(chunks, Chunk{
			ID:   ChunkID(meta.URL, text),
			Text: text,
			Metadata: ChunkMetadata{
				Source:      meta.Source,
				URL:         meta.URL,
				Title:       meta.Title,
				SectionPath: joinPath(path),
			},
		})
	}

	for _, sec := range sections {
		var path []string
		if meta.Title != "" {
			path = append(path, meta.Title)
		}
		if sec.Heading != "" {
			path = append(path, sec.Heading)
		}

		if buf == "" {
			buf = sec.Text
			bufPath = path
			continue
		}

		if EstimateTokens(buf)+EstimateTokens(sec.Text) > opts.MaxTokens {
			flush(buf, bufPath)
			buf = sec.Text
			bufPath = path
		} else {
			buf = strings.TrimSpace(buf + "\n\n" + sec.Text)
			if len(bufPath) == 0 {
				bufPath = path
			}
		}

		if EstimateTokens(buf) >= opts.MinTokens {
			flush(buf, bufPath)
			buf = ""
			bufPath = nil
		}
	}

	if buf != "" {
		flush(buf, bufPath)
	}

	return chunks
}

func joinPath(parts []string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, " > ")
}

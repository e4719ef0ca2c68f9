// Package jsonl writes chunks as line-delimited JSON, the crawl's
// durable output format.
package jsonl

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/fwojciec/docchunk"
)

// Ensure Writer implements docchunk.ChunkWriter at compile time.
var _ docchunk.ChunkWriter = (*Writer)(nil)

// Writer streams chunks as one JSON object per line. Every record is
// written immediately, so an interrupted run leaves a valid prefix of
// independently parseable lines.
type Writer struct {
	enc    *json.Encoder
	closer io.Closer
}

// NewWriter creates a Writer on top of an existing io.Writer.
func NewWriter(w io.Writer) *Writer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &Writer{enc: enc}
}

// OpenFile creates a Writer backed by the file at path. The file is
// truncated: output is rewritten from scratch each run, not appended
// across runs.
func OpenFile(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	w := NewWriter(f)
	w.closer = f
	return w, nil
}

// WriteChunk appends the chunk as a single JSON line.
func (w *Writer) WriteChunk(ctx context.Context, chunk *docchunk.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return w.enc.Encode(chunk)
}

// Close closes the underlying file, if any.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}

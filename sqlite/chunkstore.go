package sqlite

import (
	"context"
	"time"

	"github.com/fwojciec/docchunk"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ docchunk.ChunkWriter = (*ChunkStore)(nil)

// ChunkStore persists chunks under a crawl-run record so that multiple
// runs can coexist in one database.
type ChunkStore struct {
	db       *DB
	crawlID  string
	position int
}

// NewChunkStore creates a ChunkStore and records a new crawl run with a
// generated ID.
func NewChunkStore(ctx context.Context, db *DB, baseURL, source string) (*ChunkStore, error) {
	s := &ChunkStore{
		db:      db,
		crawlID: uuid.New().String(),
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO crawls (id, base_url, source, started_at)
		VALUES (?, ?, ?, ?)
	`, s.crawlID, baseURL, source, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	return s, nil
}

// CrawlID returns the identifier of the crawl run this store writes to.
func (s *ChunkStore) CrawlID() string {
	return s.crawlID
}

// WriteChunk inserts the chunk at the next position in the crawl run.
func (s *ChunkStore) WriteChunk(ctx context.Context, chunk *docchunk.Chunk) error {
	if chunk.Text == "" {
		return docchunk.Errorf(docchunk.EINVALID, "chunk text required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (crawl_id, position, id, source, url, title, section_path, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.crawlID, s.position, chunk.ID, chunk.Metadata.Source, chunk.Metadata.URL,
		chunk.Metadata.Title, chunk.Metadata.SectionPath, chunk.Text,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	s.position++
	return nil
}

// CountChunks returns the number of chunks stored for this crawl run.
func (s *ChunkStore) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chunks WHERE crawl_id = ?
	`, s.crawlID).Scan(&n)
	return n, err
}

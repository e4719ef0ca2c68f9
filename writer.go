package docchunk

import "context"

// MultiWriter fans a chunk out to several writers. The first failing
// writer aborts the write.
type MultiWriter []ChunkWriter

// Ensure MultiWriter implements ChunkWriter at compile time.
var _ ChunkWriter = (MultiWriter)(nil)

// WriteChunk writes the chunk to every underlying writer in order.
func (m MultiWriter) WriteChunk(ctx context.Context, chunk *Chunk) error {
	for _, w := range m {
		if err := w.WriteChunk(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

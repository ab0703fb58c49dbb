package port

import "sermonsearch/internal/domain"

// IndexStore is the local catalog of what has been indexed. It backs
// incremental re-runs (skip documents already committed) and the stats
// command; the vector store itself lives behind VectorStore.
type IndexStore interface {
	PutDoc(doc domain.SourceDocument, chunkCount, wordCount int) error

	// HasDoc reports whether the document was already committed.
	HasDoc(id string) (bool, error)

	PutChunks(chunks []domain.Chunk) error

	GetChunksByDoc(docID string) ([]domain.Chunk, error)

	GetStats() (domain.Stats, error)

	Close() error
}

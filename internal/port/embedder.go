package port

// Embedder generates vector embeddings for text.
type Embedder interface {
	// Embed generates embeddings for the given texts.
	// Returns a slice of vectors, one per input text.
	Embed(texts []string) ([][]float32, error)

	// Dimension returns the embedding vector dimension.
	Dimension() int

	// ModelName returns the name of the embedding model.
	ModelName() string
}

// VectorStore is the external vector database the engine writes chunks to
// and queries at search time. Collections map one-to-one onto content
// pools.
type VectorStore interface {
	// Upsert adds or updates vectors in the named collection. Commits are
	// idempotent: item IDs are content-derived, so re-upserting the same
	// batch is a no-op.
	Upsert(collection string, items []VectorItem) error

	// Query finds the k nearest vectors in the named collection.
	Query(collection string, vector []float32, k int) ([]VectorResult, error)

	// Count returns the number of vectors in the named collection.
	Count(collection string) (int, error)
}

// VectorItem represents a vector to be stored with its source text and
// metadata.
type VectorItem struct {
	ID       string
	Vector   []float32
	Document string
	Metadata map[string]string
}

// VectorResult represents a single nearest-neighbor match.
type VectorResult struct {
	ID       string
	Document string
	Metadata map[string]string
	Distance float64 // lower is closer
}

package port

// Reranker scores query-document pairs for relevance.
type Reranker interface {
	// Rerank scores each (query, document) pair. Results come back sorted
	// by relevance score, highest first, with Index referring to the
	// position in the input slice.
	Rerank(query string, documents []string) ([]RerankedResult, error)

	// ModelName returns the name of the reranking model.
	ModelName() string
}

// RerankedResult represents a reranked document.
type RerankedResult struct {
	Index int     // Original index in the input slice
	Score float64 // Relevance score (higher is better)
}

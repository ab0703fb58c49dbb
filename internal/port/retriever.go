package port

import "sermonsearch/internal/domain"

// Retriever fetches an over-sized candidate set for a query from one
// content pool.
type Retriever interface {
	// Retrieve returns up to nCandidates deduplicated candidates for the
	// pool, in retrieval order. A failed or unavailable pool yields an
	// empty slice, not an error that aborts the request.
	Retrieve(query string, pool domain.Pool, nCandidates int) ([]domain.Candidate, error)
}

// Package search implements query-time retrieval: pulling candidates from
// the vector store, filtering low-value content, and applying curated
// pinned overrides.
package search

import (
	"fmt"

	"sermonsearch/config"
	"sermonsearch/internal/domain"
	"sermonsearch/internal/port"
)

// CandidateRetriever embeds a query and pulls nearest chunks from the
// pool's collection. Near-duplicate chunks (same leading text, e.g. the
// same sermon uploaded twice) are collapsed to the closest occurrence.
type CandidateRetriever struct {
	embedder    port.Embedder
	store       port.VectorStore
	cfg         *config.Config
	prefixChars int
}

func NewCandidateRetriever(embedder port.Embedder, store port.VectorStore, cfg *config.Config) *CandidateRetriever {
	prefix := cfg.Retrieve.DedupPrefixChars
	if prefix <= 0 {
		prefix = 150
	}
	return &CandidateRetriever{
		embedder:    embedder,
		store:       store,
		cfg:         cfg,
		prefixChars: prefix,
	}
}

func (r *CandidateRetriever) Retrieve(query string, pool domain.Pool, nCandidates int) ([]domain.Candidate, error) {
	collection := r.cfg.CollectionFor(string(pool))
	if collection == "" {
		return nil, fmt.Errorf("unknown pool: %s", pool)
	}

	vectors, err := r.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	results, err := r.store.Query(collection, vectors[0], nCandidates)
	if err != nil {
		return nil, fmt.Errorf("vector query failed for %s: %w", collection, err)
	}

	// Results arrive closest-first, so keeping the first occurrence of a
	// prefix keeps the best-scoring duplicate.
	seen := make(map[string]bool, len(results))
	candidates := make([]domain.Candidate, 0, len(results))
	for _, res := range results {
		prefix := domain.TruncateOnRune(res.Document, r.prefixChars)
		if seen[prefix] {
			continue
		}
		seen[prefix] = true

		candidates = append(candidates, domain.Candidate{
			Text:      res.Document,
			Title:     res.Metadata["title"],
			DocID:     res.Metadata["video_id"],
			URL:       res.Metadata["url"],
			ClipURL:   res.Metadata["clip_url"],
			StartTime: res.Metadata["start_time"],
			Pool:      pool,
			Distance:  res.Distance,
		})
	}
	return candidates, nil
}

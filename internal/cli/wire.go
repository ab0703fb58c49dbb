package cli

import (
	"fmt"
	"path/filepath"

	"sermonsearch/config"
	"sermonsearch/internal/adapter/embedding"
	"sermonsearch/internal/adapter/reranker"
	"sermonsearch/internal/adapter/vectorstore"
	"sermonsearch/internal/port"
	"sermonsearch/internal/search"
	"sermonsearch/internal/usecase"
)

func newVectorStore(cfg *config.Config) (port.VectorStore, error) {
	switch cfg.VectorDB.Type {
	case "qdrant", "":
		return vectorstore.NewQdrant(cfg.VectorDB), nil
	case "memory":
		return vectorstore.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown vector store type: %s", cfg.VectorDB.Type)
}

// newSearcher assembles the full query stack from configuration.
func newSearcher(cfg *config.Config, rootDir string) (*usecase.Searcher, port.VectorStore, error) {
	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}
	vectors, err := newVectorStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	rerank, err := reranker.New(cfg.Rerank)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create reranker: %w", err)
	}

	rulesPath := cfg.Pinned.RulesFile
	if rulesPath != "" && !filepath.IsAbs(rulesPath) {
		rulesPath = filepath.Join(rootDir, rulesPath)
	}
	pinned, err := search.LoadPinnedRules(rulesPath)
	if err != nil {
		return nil, nil, err
	}

	retriever := search.NewCandidateRetriever(embedder, vectors, cfg)
	searcher := usecase.NewSearcher(retriever, search.NewContentFilter(), rerank, pinned, cfg, nil)
	return searcher, vectors, nil
}

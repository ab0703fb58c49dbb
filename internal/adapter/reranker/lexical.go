package reranker

import (
	"sort"

	"sermonsearch/internal/adapter/analyzer"
	"sermonsearch/internal/port"
)

// LexicalReranker scores passages by expanded-keyword overlap with the
// query. It needs no network or model and serves as the offline rerank
// backend.
type LexicalReranker struct {
	expander *analyzer.KeywordExpander
}

func NewLexicalReranker() *LexicalReranker {
	return &LexicalReranker{expander: analyzer.NewKeywordExpander()}
}

// Rerank scores documents by keyword overlap. Ties keep retrieval order.
func (r *LexicalReranker) Rerank(query string, documents []string) ([]port.RerankedResult, error) {
	keywords := r.expander.Expand(query)

	results := make([]port.RerankedResult, len(documents))
	if len(keywords) == 0 {
		// Degenerate query: preserve retrieval order with decaying scores.
		for i := range documents {
			results[i] = port.RerankedResult{Index: i, Score: 1.0 - float64(i)*0.01}
		}
		return results, nil
	}

	for i, doc := range documents {
		results[i] = port.RerankedResult{
			Index: i,
			Score: r.expander.Overlap(doc, keywords),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results, nil
}

// ModelName returns the model name.
func (r *LexicalReranker) ModelName() string {
	return "lexical-overlap"
}

package usecase

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"sermonsearch/config"
	"sermonsearch/internal/domain"
	"sermonsearch/internal/port"
	"sermonsearch/internal/search"
)

const snippetChars = 250

// Searcher answers queries: each requested pool is retrieved, filtered,
// and reranked independently, then pinned overrides are applied on top.
type Searcher struct {
	retriever port.Retriever
	filter    *search.ContentFilter
	reranker  port.Reranker
	pinned    *search.PinnedRules
	cfg       *config.Config
	log       *slog.Logger

	// The cross-encoder backend is not safe to share, so calls are
	// serialized through this semaphore.
	rerankSem chan struct{}
}

func NewSearcher(
	retriever port.Retriever,
	filter *search.ContentFilter,
	reranker port.Reranker,
	pinned *search.PinnedRules,
	cfg *config.Config,
	log *slog.Logger,
) *Searcher {
	if log == nil {
		log = slog.Default()
	}
	slots := cfg.Rerank.MaxConcurrent
	if slots <= 0 {
		slots = 1
	}
	return &Searcher{
		retriever: retriever,
		filter:    filter,
		reranker:  reranker,
		pinned:    pinned,
		cfg:       cfg,
		log:       log,
		rerankSem: make(chan struct{}, slots),
	}
}

func (u *Searcher) Search(req domain.SearchRequest) (*domain.SearchResponse, error) {
	started := time.Now()

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}
	pools, err := resolvePools(req.Pool)
	if err != nil {
		return nil, err
	}

	perPool := make([][]domain.RankedResult, len(pools))
	var wg sync.WaitGroup
	for i, pool := range pools {
		wg.Add(1)
		go func(i int, pool domain.Pool) {
			defer wg.Done()
			perPool[i] = u.searchPoolWithTimeout(query, pool, req)
		}(i, pool)
	}
	wg.Wait()

	var pinned []domain.RankedResult
	if u.pinned != nil {
		pinned = u.pinned.Match(query)
	}
	pinnedDocs := make(map[string]bool, len(pinned))
	for _, p := range pinned {
		pinnedDocs[p.DocID] = true
	}

	results := append([]domain.RankedResult{}, pinned...)
	for _, poolResults := range perPool {
		for _, r := range poolResults {
			if pinnedDocs[r.DocID] {
				continue
			}
			results = append(results, r)
		}
	}

	return &domain.SearchResponse{
		Query:       query,
		Results:     results,
		TimingMs:    time.Since(started).Milliseconds(),
		PinnedCount: len(pinned),
	}, nil
}

func resolvePools(pool domain.Pool) ([]domain.Pool, error) {
	switch pool {
	case "", domain.PoolAll:
		return domain.PoolOrder, nil
	case domain.PoolSermons, domain.PoolIllustrations, domain.PoolWebsite:
		return []domain.Pool{pool}, nil
	}
	return nil, fmt.Errorf("%w: unknown pool %q", domain.ErrInvalidQuery, pool)
}

// searchPoolWithTimeout degrades a slow pool to zero results instead of
// stalling the whole response.
func (u *Searcher) searchPoolWithTimeout(query string, pool domain.Pool, req domain.SearchRequest) []domain.RankedResult {
	timeout := time.Duration(u.cfg.Retrieve.PoolTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	done := make(chan []domain.RankedResult, 1)
	go func() {
		done <- u.searchPool(query, pool, req)
	}()
	select {
	case results := <-done:
		return results
	case <-time.After(timeout):
		u.log.Warn("pool timed out", "pool", pool, "timeout", timeout)
		return nil
	}
}

func (u *Searcher) searchPool(query string, pool domain.Pool, req domain.SearchRequest) []domain.RankedResult {
	nCandidates, nResults := u.poolLimits(pool, req)

	candidates, err := u.retriever.Retrieve(query, pool, nCandidates)
	if err != nil {
		u.log.Warn("retrieval failed", "pool", pool, "error", err)
		return nil
	}
	if pool == domain.PoolSermons && u.filter != nil {
		candidates = u.filter.Filter(candidates)
	}
	if len(candidates) == 0 {
		return nil
	}

	scores := u.scoreCandidates(query, candidates)

	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > nResults {
		order = order[:nResults]
	}

	results := make([]domain.RankedResult, len(order))
	for i, idx := range order {
		results[i] = toRankedResult(candidates[idx], scores[idx])
	}
	return results
}

func (u *Searcher) poolLimits(pool domain.Pool, req domain.SearchRequest) (nCandidates, nResults int) {
	if pool == domain.PoolSermons {
		nCandidates = u.cfg.Retrieve.SermonCandidates
		nResults = u.cfg.Retrieve.SermonResults
	} else {
		nCandidates = u.cfg.Retrieve.SecondaryCandidates
		nResults = u.cfg.Retrieve.SecondaryResults
	}
	if req.NCandidates > 0 {
		nCandidates = req.NCandidates
	}
	if req.NResults > 0 {
		nResults = req.NResults
	}
	if nCandidates < nResults {
		nCandidates = nResults
	}
	return nCandidates, nResults
}

// scoreCandidates returns one relevance score per candidate. Cross-encoder
// scores win; a failed call or a non-finite score falls back to vector
// similarity, so the pool is degraded rather than emptied.
func (u *Searcher) scoreCandidates(query string, candidates []domain.Candidate) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		scores[i] = c.Similarity()
	}
	if u.reranker == nil {
		return scores
	}

	texts := make([]string, len(candidates))
	for i, c := range candidates {
		texts[i] = c.Text
	}

	u.rerankSem <- struct{}{}
	ranked, err := u.reranker.Rerank(query, texts)
	<-u.rerankSem
	if err != nil {
		u.log.Warn("rerank failed, ranking by similarity", "error", err)
		return scores
	}

	for _, r := range ranked {
		if r.Index < 0 || r.Index >= len(scores) {
			continue
		}
		if math.IsNaN(r.Score) || math.IsInf(r.Score, 0) {
			continue
		}
		scores[r.Index] = r.Score
	}
	return scores
}

func toRankedResult(c domain.Candidate, score float64) domain.RankedResult {
	snippet := domain.TruncateOnRune(c.Text, snippetChars)
	return domain.RankedResult{
		Text:           c.Text,
		Title:          c.Title,
		DocID:          c.DocID,
		StartTime:      c.StartTime,
		URL:            c.URL,
		TimestampedURL: c.ClipURL,
		Pool:           c.Pool,
		Score:          score,
		Snippet:        snippet,
	}
}

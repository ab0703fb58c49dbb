package search

import (
	"strings"
	"testing"

	"sermonsearch/config"
	"sermonsearch/internal/domain"
	"sermonsearch/internal/port"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (e *stubEmbedder) Embed(texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vector
	}
	return out, nil
}

func (e *stubEmbedder) Dimension() int    { return len(e.vector) }
func (e *stubEmbedder) ModelName() string { return "stub" }

type stubVectorStore struct {
	results []port.VectorResult
	err     error
	queried string
}

func (s *stubVectorStore) Upsert(collection string, items []port.VectorItem) error { return nil }
func (s *stubVectorStore) Count(collection string) (int, error)                    { return len(s.results), nil }

func (s *stubVectorStore) Query(collection string, vector []float32, k int) ([]port.VectorResult, error) {
	s.queried = collection
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func TestRetrieveDedupsByTextPrefix(t *testing.T) {
	// Two chunks share their first 150 characters and diverge only in
	// the tail; only the closer one survives.
	shared := strings.Repeat("grace and truth came through jesus ", 5)[:150]
	store := &stubVectorStore{results: []port.VectorResult{
		{ID: "a", Document: shared + " tail one", Distance: 0.1, Metadata: map[string]string{"title": "Romans"}},
		{ID: "b", Document: shared + " tail two", Distance: 0.2, Metadata: map[string]string{"title": "Romans again"}},
		{ID: "c", Document: "a different passage altogether about forgiveness", Distance: 0.3, Metadata: map[string]string{"title": "Matthew"}},
	}}

	r := NewCandidateRetriever(&stubEmbedder{vector: []float32{1}}, store, config.DefaultConfig())
	candidates, err := r.Retrieve("grace", domain.PoolSermons, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates after dedup, got %d", len(candidates))
	}
	if candidates[0].Title != "Romans" {
		t.Errorf("expected first occurrence kept, got %q", candidates[0].Title)
	}
	if store.queried != "sermon_segments" {
		t.Errorf("queried collection %q", store.queried)
	}
}

func TestRetrieveDedupKeySafeOnMultibyteText(t *testing.T) {
	// A dedup boundary landing inside a multi-byte rune must not split
	// it: texts identical through the boundary still collapse.
	shared := "x" + strings.Repeat("é", 80) // byte 150 falls mid-rune
	store := &stubVectorStore{results: []port.VectorResult{
		{ID: "a", Document: shared + " one", Distance: 0.1, Metadata: map[string]string{"title": "First"}},
		{ID: "b", Document: shared + " two", Distance: 0.2, Metadata: map[string]string{"title": "Second"}},
	}}

	r := NewCandidateRetriever(&stubEmbedder{vector: []float32{1}}, store, config.DefaultConfig())
	candidates, err := r.Retrieve("grace", domain.PoolSermons, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected 1 candidate after dedup, got %d", len(candidates))
	}
	if candidates[0].Title != "First" {
		t.Errorf("expected closest occurrence kept, got %q", candidates[0].Title)
	}
}

func TestRetrieveMapsMetadata(t *testing.T) {
	store := &stubVectorStore{results: []port.VectorResult{{
		ID:       "c1",
		Document: "the text",
		Distance: 0.25,
		Metadata: map[string]string{
			"title":      "Hope in Exile",
			"video_id":   "abc123",
			"url":        "https://www.youtube.com/watch?v=abc123",
			"clip_url":   "https://www.youtube.com/watch?v=abc123&t=120s",
			"start_time": "2:00",
		},
	}}}

	r := NewCandidateRetriever(&stubEmbedder{vector: []float32{1}}, store, config.DefaultConfig())
	candidates, err := r.Retrieve("hope", domain.PoolIllustrations, 10)
	if err != nil {
		t.Fatal(err)
	}
	c := candidates[0]
	if c.DocID != "abc123" || c.Title != "Hope in Exile" || c.StartTime != "2:00" {
		t.Errorf("metadata not mapped: %+v", c)
	}
	if c.Pool != domain.PoolIllustrations {
		t.Errorf("pool tag = %s", c.Pool)
	}
	if got := c.Similarity(); got != 0.75 {
		t.Errorf("similarity = %f", got)
	}
}

func TestRetrieveUnknownPool(t *testing.T) {
	r := NewCandidateRetriever(&stubEmbedder{vector: []float32{1}}, &stubVectorStore{}, config.DefaultConfig())
	if _, err := r.Retrieve("q", domain.Pool("bogus"), 5); err == nil {
		t.Fatal("expected error for unknown pool")
	}
}

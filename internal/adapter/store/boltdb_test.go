package store

import (
	"path/filepath"
	"testing"

	"sermonsearch/internal/domain"
)

func newTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := NewBoltStore(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutDocAndHasDoc(t *testing.T) {
	s := newTestStore(t)

	doc := domain.SourceDocument{ID: "abc123", URL: "https://www.youtube.com/watch?v=abc123", Title: "Romans 8"}
	if err := s.PutDoc(doc, 4, 900); err != nil {
		t.Fatal(err)
	}

	found, err := s.HasDoc("abc123")
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("expected committed document to be found")
	}
	found, _ = s.HasDoc("missing")
	if found {
		t.Error("expected unknown document to be absent")
	}
}

func TestStatsAccumulate(t *testing.T) {
	s := newTestStore(t)

	s.PutDoc(domain.SourceDocument{ID: "a"}, 3, 600)
	s.PutDoc(domain.SourceDocument{ID: "b"}, 2, 400)

	stats, err := s.GetStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalDocs != 2 || stats.TotalChunks != 5 || stats.TotalWords != 1000 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestRecommitDoesNotDoubleCount(t *testing.T) {
	s := newTestStore(t)

	s.PutDoc(domain.SourceDocument{ID: "a"}, 3, 600)
	s.PutDoc(domain.SourceDocument{ID: "a"}, 5, 800)

	stats, _ := s.GetStats()
	if stats.TotalDocs != 1 {
		t.Errorf("expected 1 doc, got %d", stats.TotalDocs)
	}
	if stats.TotalChunks != 5 || stats.TotalWords != 800 {
		t.Errorf("expected latest counts to win, got %+v", stats)
	}
}

func TestPutChunksAndGetByDoc(t *testing.T) {
	s := newTestStore(t)

	chunks := []domain.Chunk{
		{ID: "c1", DocID: "a", StartSec: 120, EndSec: 300, WordCount: 150},
		{ID: "c2", DocID: "a", StartSec: 300, EndSec: 480, WordCount: 140},
		{ID: "c3", DocID: "b", StartSec: 0, EndSec: 200, WordCount: 90},
	}
	if err := s.PutChunks(chunks); err != nil {
		t.Fatal(err)
	}
	// Idempotent: re-upserting must not duplicate the doc-chunk links.
	if err := s.PutChunks(chunks[:2]); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetChunksByDoc("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks for doc a, got %d", len(got))
	}
	if got[0].ID != "c1" || got[0].StartSec != 120 {
		t.Errorf("unexpected first chunk: %+v", got[0])
	}

	got, _ = s.GetChunksByDoc("missing")
	if len(got) != 0 {
		t.Errorf("expected no chunks for unknown doc, got %d", len(got))
	}
}

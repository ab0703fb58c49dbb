package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chunk.MinWords != 80 {
		t.Errorf("expected MinWords=80, got %d", cfg.Chunk.MinWords)
	}
	if cfg.Chunk.MaxWords != 450 {
		t.Errorf("expected MaxWords=450, got %d", cfg.Chunk.MaxWords)
	}
	if cfg.Retrieve.SermonCandidates != 20 {
		t.Errorf("expected SermonCandidates=20, got %d", cfg.Retrieve.SermonCandidates)
	}
	if cfg.Retrieve.DedupPrefixChars != 150 {
		t.Errorf("expected DedupPrefixChars=150, got %d", cfg.Retrieve.DedupPrefixChars)
	}
	if len(cfg.Boundary.TeachingStartPatterns) == 0 {
		t.Error("expected default teaching-start patterns")
	}
	if len(cfg.Boundary.ClosingPhrases) == 0 {
		t.Error("expected default closing phrases")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sermonsearch.yaml")

	content := `
chunk:
  min_words: 60
  max_words: 300
retrieve:
  sermon_results: 8
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chunk.MinWords != 60 {
		t.Errorf("expected MinWords=60, got %d", cfg.Chunk.MinWords)
	}
	if cfg.Chunk.MaxWords != 300 {
		t.Errorf("expected MaxWords=300, got %d", cfg.Chunk.MaxWords)
	}
	if cfg.Retrieve.SermonResults != 8 {
		t.Errorf("expected SermonResults=8, got %d", cfg.Retrieve.SermonResults)
	}
	// Untouched sections keep defaults.
	if cfg.Retrieve.SermonCandidates != 20 {
		t.Errorf("expected SermonCandidates default 20, got %d", cfg.Retrieve.SermonCandidates)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sermonsearch.yaml")

	content := `
vector_db:
  sermon_collection: sermon_segments_v2
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.VectorDB.SermonCollection != "sermon_segments_v2" {
		t.Errorf("expected sermon_segments_v2, got %s", cfg.VectorDB.SermonCollection)
	}
}

func TestCollectionFor(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.CollectionFor("sermons"); got != "sermon_segments" {
		t.Errorf("expected sermon_segments, got %s", got)
	}
	if got := cfg.CollectionFor("website"); got != "church_website" {
		t.Errorf("expected church_website, got %s", got)
	}
	if got := cfg.CollectionFor("bogus"); got != "" {
		t.Errorf("expected empty collection for unknown pool, got %s", got)
	}
}

func TestCatalogPath(t *testing.T) {
	path := CatalogPath("/home/user/sermons")
	expected := filepath.Join("/home/user/sermons", ".sermonsearch", "catalog.db")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
}

package chunker

import (
	"regexp"
	"strings"
	"testing"

	"sermonsearch/internal/domain"
)

func segOfWords(n int, at float64) domain.Segment {
	return domain.Segment{
		Text:     strings.TrimSpace(strings.Repeat("word ", n)),
		StartSec: at,
	}
}

func testDoc(segments ...domain.Segment) domain.SourceDocument {
	return domain.SourceDocument{
		ID:       "vid1",
		URL:      "https://www.youtube.com/watch?v=vid1",
		Title:    "Test Sermon",
		Segments: segments,
	}
}

func TestChunkBoundaries(t *testing.T) {
	c := NewWordChunker(80, 120, 0)

	doc := testDoc(
		segOfWords(40, 0),
		segOfWords(50, 30),
		segOfWords(60, 60),
	)

	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}

	if chunks[0].WordCount != 90 {
		t.Errorf("expected first chunk of 90 words, got %d", chunks[0].WordCount)
	}
	if chunks[1].WordCount != 60 {
		t.Errorf("expected tail chunk of 60 words, got %d", chunks[1].WordCount)
	}
	if chunks[0].StartSec != 0 || chunks[0].EndSec != 30 {
		t.Errorf("first chunk span = [%d,%d], want [0,30]", chunks[0].StartSec, chunks[0].EndSec)
	}
	if chunks[1].StartSec != 60 {
		t.Errorf("second chunk should start at 60, got %d", chunks[1].StartSec)
	}
}

func TestChunkShortDocument(t *testing.T) {
	c := NewWordChunker(80, 450, 0)

	doc := testDoc(segOfWords(30, 0), segOfWords(30, 10))
	if chunks := c.Chunk(doc); chunks != nil {
		t.Errorf("expected no chunks for a 60-word document, got %d", len(chunks))
	}
}

func TestChunkTailDiscarded(t *testing.T) {
	c := NewWordChunker(80, 120, 0)

	// Two chunks close normally; the 30-word tail is under minWords/2
	// and dropped.
	doc := testDoc(
		segOfWords(90, 0),
		segOfWords(100, 30),
		segOfWords(30, 60),
	)

	chunks := c.Chunk(doc)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for _, ch := range chunks {
		if ch.WordCount < 40 {
			t.Errorf("chunk of %d words is below minWords/2", ch.WordCount)
		}
	}
}

func TestChunkInvariants(t *testing.T) {
	c := NewWordChunker(80, 450, 0)

	var segments []domain.Segment
	for i := 0; i < 40; i++ {
		segments = append(segments, segOfWords(25, float64(i*20)))
	}
	doc := testDoc(segments...)

	chunks := c.Chunk(doc)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}

	prevStart := -1
	for i, ch := range chunks {
		if ch.StartSec > ch.EndSec {
			t.Errorf("chunk %d: start %d > end %d", i, ch.StartSec, ch.EndSec)
		}
		if ch.StartSec < prevStart {
			t.Errorf("chunk %d: start offsets not monotonic", i)
		}
		prevStart = ch.StartSec
		if i < len(chunks)-1 && ch.WordCount > 450 {
			t.Errorf("chunk %d: %d words exceeds max", i, ch.WordCount)
		}
		if ch.WordCount < 40 {
			t.Errorf("chunk %d: %d words below minWords/2", i, ch.WordCount)
		}
		if ch.ID == "" || ch.DocID != "vid1" {
			t.Errorf("chunk %d: bad identity %q/%q", i, ch.ID, ch.DocID)
		}
	}
}

func TestChunkDeterminism(t *testing.T) {
	c := NewWordChunker(80, 200, 0)

	doc := testDoc(
		segOfWords(70, 0),
		segOfWords(80, 30),
		segOfWords(90, 60),
		segOfWords(50, 90),
	)

	first := c.Chunk(doc)
	second := c.Chunk(doc)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestChunkOverlap(t *testing.T) {
	c := NewWordChunker(80, 120, 10)

	doc := testDoc(
		segOfWords(90, 0),
		segOfWords(60, 30),
		segOfWords(60, 60),
	)

	chunks := c.Chunk(doc)
	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	// Second chunk is seeded with the tail of the first.
	if chunks[1].WordCount <= 60 {
		t.Errorf("expected overlap words in second chunk, got %d", chunks[1].WordCount)
	}
}

func TestChunkIDIsUUID(t *testing.T) {
	c := NewWordChunker(80, 450, 0)
	doc := testDoc(segOfWords(100, 125))

	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	// Qdrant accepts only UUID or integer point IDs.
	uuidShape := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	if !uuidShape.MatchString(chunks[0].ID) {
		t.Errorf("chunk ID %q is not UUID-shaped", chunks[0].ID)
	}

	again := c.Chunk(doc)
	if again[0].ID != chunks[0].ID {
		t.Errorf("chunk ID not stable: %q vs %q", chunks[0].ID, again[0].ID)
	}
}

func TestTimestampedURL(t *testing.T) {
	c := NewWordChunker(80, 450, 0)
	doc := testDoc(segOfWords(100, 125))

	chunks := c.Chunk(doc)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	want := "https://www.youtube.com/watch?v=vid1&t=125s"
	if got := chunks[0].TimestampedURL(); got != want {
		t.Errorf("TimestampedURL = %s, want %s", got, want)
	}
}

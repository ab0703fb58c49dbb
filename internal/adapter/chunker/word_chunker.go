// Package chunker packs transcript segments into size-bounded retrieval
// chunks with time provenance.
package chunker

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"sermonsearch/internal/domain"
)

// WordChunker groups contiguous segments into chunks bounded by word
// count. A chunk closes when the next segment would push it past
// maxWords and it already holds at least minWords. Documents whose total
// word count is under minWords produce no chunks at all.
type WordChunker struct {
	minWords     int
	maxWords     int
	overlapWords int
}

func NewWordChunker(minWords, maxWords, overlapWords int) *WordChunker {
	return &WordChunker{
		minWords:     minWords,
		maxWords:     maxWords,
		overlapWords: overlapWords,
	}
}

func (c *WordChunker) Chunk(doc domain.SourceDocument) []domain.Chunk {
	if len(doc.Segments) == 0 {
		return nil
	}
	total := 0
	for _, seg := range doc.Segments {
		total += seg.Words()
	}
	if total < c.minWords {
		return nil
	}

	var chunks []domain.Chunk
	var texts []string
	words := 0
	startSec := doc.Segments[0].StartSec
	endSec := doc.Segments[0].StartSec

	for _, seg := range doc.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		wc := seg.Words()

		if words+wc > c.maxWords && words >= c.minWords {
			chunks = append(chunks, c.build(doc, texts, words, startSec, endSec))

			texts = texts[:0]
			words = 0
			if c.overlapWords > 0 {
				tail := trailingWords(chunks[len(chunks)-1].Text, c.overlapWords)
				if tail != "" {
					texts = append(texts, tail)
					words = len(strings.Fields(tail))
				}
			}
			startSec = seg.StartSec
		}

		texts = append(texts, text)
		words += wc
		endSec = seg.StartSec
	}

	if len(texts) > 0 && words >= c.minWords/2 {
		chunks = append(chunks, c.build(doc, texts, words, startSec, endSec))
	}

	return chunks
}

func (c *WordChunker) build(doc domain.SourceDocument, texts []string, words int, startSec, endSec float64) domain.Chunk {
	return domain.Chunk{
		ID:        chunkID(doc.ID, int(startSec)),
		DocID:     doc.ID,
		URL:       doc.URL,
		Title:     doc.Title,
		Text:      strings.Join(texts, " "),
		StartSec:  int(startSec),
		EndSec:    int(endSec),
		WordCount: words,
	}
}

// trailingWords returns the last n whitespace-delimited words of text.
func trailingWords(text string, n int) string {
	fields := strings.Fields(text)
	if len(fields) <= n {
		return text
	}
	return strings.Join(fields[len(fields)-n:], " ")
}

// chunkID derives a stable identifier from the document and chunk start,
// so re-indexing the same transcript upserts rather than duplicates. The
// hash is rendered in UUID form because Qdrant only accepts UUID or
// integer point IDs.
func chunkID(docID string, startSec int) string {
	data := fmt.Sprintf("%s:%d", docID, startSec)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x-%x-%x-%x-%x", hash[0:4], hash[4:6], hash[6:8], hash[8:10], hash[10:16])
}

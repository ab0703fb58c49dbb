// Package usecase wires the adapters into the two top-level operations:
// indexing a transcript corpus and answering search queries.
package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"sermonsearch/config"
	"sermonsearch/internal/adapter/boundary"
	"sermonsearch/internal/adapter/transcript"
	"sermonsearch/internal/domain"
	"sermonsearch/internal/port"
)

// Indexer runs the ingest pipeline: discover transcript files, parse and
// trim them to the teaching span, chunk, embed, and commit to the vector
// store and the local catalog.
type Indexer struct {
	walker   port.FileWalker
	detector *boundary.Detector
	chunker  port.Chunker
	embedder port.Embedder
	vectors  port.VectorStore
	catalog  port.IndexStore
	cfg      *config.Config
	log      *slog.Logger

	// Progress, when set, is called after each file with (done, total).
	Progress func(done, total int)
}

func NewIndexer(
	walker port.FileWalker,
	detector *boundary.Detector,
	chunker port.Chunker,
	embedder port.Embedder,
	vectors port.VectorStore,
	catalog port.IndexStore,
	cfg *config.Config,
	log *slog.Logger,
) *Indexer {
	if log == nil {
		log = slog.Default()
	}
	return &Indexer{
		walker:   walker,
		detector: detector,
		chunker:  chunker,
		embedder: embedder,
		vectors:  vectors,
		catalog:  catalog,
		cfg:      cfg,
		log:      log,
	}
}

// IndexResult summarizes one ingest run.
type IndexResult struct {
	FilesProcessed int
	DocsIndexed    int
	DocsSkipped    int
	ChunksCreated  int
	Errors         []string
}

type collectionEnsurer interface {
	EnsureCollection(collection string, dimension int) error
}

// Index ingests every transcript file under root. A document already in
// the catalog is skipped, so interrupted runs resume where they stopped.
func (u *Indexer) Index(root string) (*IndexResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	collection := u.cfg.VectorDB.SermonCollection
	if ensurer, ok := u.vectors.(collectionEnsurer); ok {
		if err := ensurer.EnsureCollection(collection, u.embedder.Dimension()); err != nil {
			return nil, fmt.Errorf("failed to ensure collection %s: %w", collection, err)
		}
	}

	result := &IndexResult{}
	for i, file := range files {
		u.indexFile(file, collection, result)
		result.FilesProcessed++
		if u.Progress != nil {
			u.Progress(i+1, len(files))
		}
		if every := u.cfg.Source.CheckpointEvery; every > 0 && (i+1)%every == 0 {
			u.log.Info("indexing checkpoint",
				"files", i+1,
				"docs", result.DocsIndexed,
				"chunks", result.ChunksCreated)
		}
	}
	return result, nil
}

func (u *Indexer) indexFile(file port.FileInfo, collection string, result *IndexResult) {
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Path, err))
		return
	}

	docs, err := transcript.Parse(transcript.FormatForFile(file.Path), raw, file.Path)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyDocument) {
			result.DocsSkipped++
			return
		}
		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			u.log.Warn("skipping unparseable transcript", "file", file.Path, "error", parseErr.Err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Path, err))
			return
		}
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Path, err))
		return
	}

	for _, doc := range docs {
		if err := u.indexDoc(doc, collection, result); err != nil {
			u.log.Warn("failed to index document", "doc", doc.ID, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", doc.ID, err))
		}
	}
}

func (u *Indexer) indexDoc(doc domain.SourceDocument, collection string, result *IndexResult) error {
	committed, err := u.catalog.HasDoc(doc.ID)
	if err != nil {
		return fmt.Errorf("catalog lookup: %w", err)
	}
	if committed {
		result.DocsSkipped++
		return nil
	}

	doc.Segments = u.detector.Trim(doc.Segments)
	chunks := u.chunker.Chunk(doc)

	wordCount := 0
	for _, seg := range doc.Segments {
		wordCount += seg.Words()
	}

	// Committing zero-chunk documents keeps re-runs from re-reading
	// transcripts that are too short to ever produce chunks.
	if len(chunks) == 0 {
		result.DocsSkipped++
		return u.catalog.PutDoc(doc, 0, wordCount)
	}

	if err := u.embedAndUpsert(chunks, collection); err != nil {
		return err
	}
	if err := u.catalog.PutChunks(chunks); err != nil {
		return fmt.Errorf("catalog chunks: %w", err)
	}
	if err := u.catalog.PutDoc(doc, len(chunks), wordCount); err != nil {
		return fmt.Errorf("catalog commit: %w", err)
	}

	result.DocsIndexed++
	result.ChunksCreated += len(chunks)
	return nil
}

func (u *Indexer) embedAndUpsert(chunks []domain.Chunk, collection string) error {
	batchSize := u.cfg.Embedding.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(chunks); start += batchSize {
		end := start + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = domain.TruncateOnRune(chunk.Text, u.cfg.Embedding.MaxChars)
		}
		vectors, err := u.embedder.Embed(texts)
		if err != nil {
			return fmt.Errorf("embedding batch: %w", err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch))
		}

		items := make([]port.VectorItem, len(batch))
		for i, chunk := range batch {
			items[i] = port.VectorItem{
				ID:       chunk.ID,
				Vector:   vectors[i],
				Document: chunk.Text,
				Metadata: map[string]string{
					"title":      chunk.Title,
					"video_id":   chunk.DocID,
					"url":        chunk.URL,
					"clip_url":   chunk.TimestampedURL(),
					"start_time": FormatClock(chunk.StartSec),
					"word_count": strconv.Itoa(chunk.WordCount),
				},
			}
		}
		if err := u.vectors.Upsert(collection, items); err != nil {
			return fmt.Errorf("vector upsert: %w", err)
		}
	}
	return nil
}

// FormatClock renders seconds as H:MM:SS, or MM:SS under an hour.
func FormatClock(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	h := totalSec / 3600
	m := (totalSec % 3600) / 60
	s := totalSec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Package store persists the local index catalog: which documents have
// been committed, their chunks, and running corpus totals.
package store

import (
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
	"sermonsearch/internal/domain"
)

var (
	bucketDocs      = []byte("docs")
	bucketChunks    = []byte("chunks")
	bucketDocChunks = []byte("doc_chunks")
	bucketStats     = []byte("stats")
	keyStats        = []byte("corpus_stats")
)

type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		buckets := [][]byte{bucketDocs, bucketChunks, bucketDocChunks, bucketStats}
		for _, b := range buckets {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

type docMeta struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	SourceFile string `json:"source_file"`
	ChunkCount int    `json:"chunk_count"`
	WordCount  int    `json:"word_count"`
}

type chunkMeta struct {
	DocID     string `json:"doc_id"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	StartSec  int    `json:"start_sec"`
	EndSec    int    `json:"end_sec"`
	WordCount int    `json:"word_count"`
}

// PutDoc commits a document and folds its counts into the corpus stats.
// Re-committing the same document updates its metadata but does not
// double-count: the old counts are subtracted first.
func (s *BoltStore) PutDoc(doc domain.SourceDocument, chunkCount, wordCount int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		docs := tx.Bucket(bucketDocs)

		var stats domain.Stats
		if data := tx.Bucket(bucketStats).Get(keyStats); data != nil {
			if err := json.Unmarshal(data, &stats); err != nil {
				return err
			}
		}
		if existing := docs.Get([]byte(doc.ID)); existing != nil {
			var old docMeta
			if err := json.Unmarshal(existing, &old); err == nil {
				stats.TotalDocs--
				stats.TotalChunks -= old.ChunkCount
				stats.TotalWords -= old.WordCount
			}
		}
		stats.TotalDocs++
		stats.TotalChunks += chunkCount
		stats.TotalWords += wordCount

		meta := docMeta{
			URL:        doc.URL,
			Title:      doc.Title,
			SourceFile: doc.SourceFile,
			ChunkCount: chunkCount,
			WordCount:  wordCount,
		}
		data, err := json.Marshal(meta)
		if err != nil {
			return err
		}
		if err := docs.Put([]byte(doc.ID), data); err != nil {
			return err
		}

		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		return tx.Bucket(bucketStats).Put(keyStats, statsData)
	})
}

func (s *BoltStore) HasDoc(id string) (bool, error) {
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		found = tx.Bucket(bucketDocs).Get([]byte(id)) != nil
		return nil
	})
	return found, err
}

func (s *BoltStore) PutChunks(chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		chunkBucket := tx.Bucket(bucketChunks)
		docChunks := tx.Bucket(bucketDocChunks)

		byDoc := make(map[string][]string)
		for _, chunk := range chunks {
			meta := chunkMeta{
				DocID:     chunk.DocID,
				URL:       chunk.URL,
				Title:     chunk.Title,
				StartSec:  chunk.StartSec,
				EndSec:    chunk.EndSec,
				WordCount: chunk.WordCount,
			}
			data, err := json.Marshal(meta)
			if err != nil {
				return err
			}
			if err := chunkBucket.Put([]byte(chunk.ID), data); err != nil {
				return err
			}
			byDoc[chunk.DocID] = append(byDoc[chunk.DocID], chunk.ID)
		}

		for docID, ids := range byDoc {
			var chunkIDs []string
			if existing := docChunks.Get([]byte(docID)); existing != nil {
				json.Unmarshal(existing, &chunkIDs)
			}
			for _, id := range ids {
				if !containsString(chunkIDs, id) {
					chunkIDs = append(chunkIDs, id)
				}
			}
			data, err := json.Marshal(chunkIDs)
			if err != nil {
				return err
			}
			if err := docChunks.Put([]byte(docID), data); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) GetChunksByDoc(docID string) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocChunks).Get([]byte(docID))
		if data == nil {
			return nil
		}
		var chunkIDs []string
		if err := json.Unmarshal(data, &chunkIDs); err != nil {
			return err
		}
		chunkBucket := tx.Bucket(bucketChunks)
		for _, id := range chunkIDs {
			data := chunkBucket.Get([]byte(id))
			if data == nil {
				continue
			}
			var meta chunkMeta
			if err := json.Unmarshal(data, &meta); err != nil {
				continue
			}
			chunks = append(chunks, domain.Chunk{
				ID:        id,
				DocID:     meta.DocID,
				URL:       meta.URL,
				Title:     meta.Title,
				StartSec:  meta.StartSec,
				EndSec:    meta.EndSec,
				WordCount: meta.WordCount,
			})
		}
		return nil
	})
	return chunks, err
}

func (s *BoltStore) GetStats() (domain.Stats, error) {
	var stats domain.Stats
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStats).Get(keyStats)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &stats)
	})
	return stats, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

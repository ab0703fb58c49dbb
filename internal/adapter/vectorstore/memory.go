package vectorstore

import (
	"math"
	"sort"
	"sync"

	"sermonsearch/internal/port"
)

// Memory is a brute-force in-memory vector store. It exists for tests and
// for running the pipeline without a Qdrant server.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]port.VectorItem
}

func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]port.VectorItem)}
}

func (m *Memory) Upsert(collection string, items []port.VectorItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]port.VectorItem)
		m.collections[collection] = coll
	}
	for _, item := range items {
		coll[item.ID] = item
	}
	return nil
}

func (m *Memory) Query(collection string, vector []float32, k int) ([]port.VectorResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	coll := m.collections[collection]
	results := make([]port.VectorResult, 0, len(coll))
	for _, item := range coll {
		results = append(results, port.VectorResult{
			ID:       item.ID,
			Document: item.Document,
			Metadata: item.Metadata,
			Distance: 1 - cosineSimilarity(vector, item.Vector),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (m *Memory) Count(collection string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection]), nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

package port

import "sermonsearch/internal/domain"

type Chunker interface {
	Chunk(doc domain.SourceDocument) []domain.Chunk
}

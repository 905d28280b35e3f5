package ingest

import (
	"context"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/repository/vector"
)

// VectorWriter defines the storage contract for ingestion.
type VectorWriter interface {
	StoreVectors(ctx context.Context, doc cocktail.Cocktail, kw cocktail.Keywords, chunks []vector.ChunkVectors) error
	DeleteVectors(ctx context.Context, cocktailID string) error
}

// BatchEmbedder vectorizes all chunk contents in one call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

// SparseEncoder produces lexical sparse vectors for chunk contents. Empty
// vectors are stored as dense-only points.
type SparseEncoder interface {
	EncodeBatch(ctx context.Context, texts []string) ([]domain.SparseVector, error)
}

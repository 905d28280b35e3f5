package search

import (
	"context"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/hit"
)

// Retriever defines the vector-store contract for hybrid retrieval.
type Retriever interface {
	QueryDense(ctx context.Context, dense []float32, f filter.Expression) ([]hit.Hit, error)
	QueryFused(ctx context.Context, dense []float32, sparse domain.SparseVector, f filter.Expression) ([]hit.Hit, error)
}

// CatalogReader reads the cached full catalog for name lookups and browsing.
type CatalogReader interface {
	All(ctx context.Context) ([]cocktail.Cocktail, error)
	AllByTitle(ctx context.Context) ([]cocktail.Cocktail, error)
}

// Embedder vectorizes the query text into a dense embedding.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// SparseEncoder produces the lexical sparse vector for hybrid retrieval.
type SparseEncoder interface {
	Encode(ctx context.Context, text string) (domain.SparseVector, error)
}

// Reranker reorders hybrid candidates with a cross-encoder. Implementations
// must degrade to the input on failure, never error.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []cocktail.Cocktail) []cocktail.Cocktail
}

package domain

import (
	"context"
	"fmt"
)

// Embedder is the shared dense vectorization contract between layers.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// BatchEmbedder vectorizes multiple texts in a single API call.
type BatchEmbedder interface {
	BatchEmbed(ctx context.Context, texts []string) (BatchEmbeddingResult, error)
}

// SparseEncoder produces lexical sparse vectors. An empty vector means
// "no lexical signal", not an error: callers fall back to dense-only search.
type SparseEncoder interface {
	Encode(ctx context.Context, text string) (SparseVector, error)
	EncodeBatch(ctx context.Context, texts []string) ([]SparseVector, error)
}

// HealthChecker verifies an external provider's availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the dense vector and token usage through the decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// BatchEmbeddingResult carries multiple embedding vectors and aggregate token usage.
type BatchEmbeddingResult struct {
	Embeddings   [][]float32
	PromptTokens int
	TotalTokens  int
}

// SparseVector is an index/weight pairing of the non-zero dimensions of a
// lexical embedding.
type SparseVector struct {
	Indices []uint32
	Values  []float32
}

// IsEmpty reports whether the sparse vector carries no lexical signal.
func (v SparseVector) IsEmpty() bool { return len(v.Indices) == 0 || len(v.Values) == 0 }

// BatchFallback calls Embed once per text. Safety net for providers without
// a native batch endpoint.
func BatchFallback(ctx context.Context, e Embedder, texts []string) (BatchEmbeddingResult, error) {
	embeddings := make([][]float32, len(texts))
	var totalPrompt, totalTokens int

	for i, text := range texts {
		res, err := e.Embed(ctx, text)
		if err != nil {
			return BatchEmbeddingResult{}, fmt.Errorf("fallback embed [%d]: %w", i, err)
		}
		embeddings[i] = res.Embedding
		totalPrompt += res.PromptTokens
		totalTokens += res.TotalTokens
	}

	return BatchEmbeddingResult{
		Embeddings:   embeddings,
		PromptTokens: totalPrompt,
		TotalTokens:  totalTokens,
	}, nil
}

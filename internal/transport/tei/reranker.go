package tei

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Reranker calls the TEI /rerank route to score documents against a query
// with a cross-encoder.
type Reranker struct {
	http   *httpClient
	logger *zap.Logger
}

// RerankerConfig holds the reranker endpoint settings.
type RerankerConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewReranker creates a cross-encoder reranker client.
func NewReranker(cfg *RerankerConfig) *Reranker {
	return &Reranker{
		http:   newHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout),
		logger: cfg.Logger,
	}
}

type rerankRequest struct {
	Query    string   `json:"query"`
	Texts    []string `json:"texts"`
	Truncate bool     `json:"truncate"`
}

type rerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Rerank scores each document against the query. The server returns results
// sorted by score, each tagged with its original index; scores are mapped
// back to input order.
func (r *Reranker) Rerank(ctx context.Context, query string, documents []string) ([]float64, error) {
	if len(documents) == 0 {
		return nil, nil
	}

	var results []rerankResult
	err := r.http.postJSON(ctx, "/rerank", rerankRequest{Query: query, Texts: documents, Truncate: true}, &results)
	if err != nil {
		return nil, fmt.Errorf("rerank: %w", err)
	}

	if len(results) != len(documents) {
		return nil, fmt.Errorf("rerank: got %d scores for %d documents", len(results), len(documents))
	}

	scores := make([]float64, len(documents))
	seen := make([]bool, len(documents))
	for _, res := range results {
		if res.Index < 0 || res.Index >= len(documents) {
			return nil, fmt.Errorf("rerank: result index %d out of range", res.Index)
		}
		if seen[res.Index] {
			return nil, fmt.Errorf("rerank: duplicate result index %d", res.Index)
		}
		seen[res.Index] = true
		scores[res.Index] = res.Score
	}
	return scores, nil
}

// HealthCheck probes the rerank route with a trivial pair.
func (r *Reranker) HealthCheck(ctx context.Context) error {
	if _, err := r.Rerank(ctx, "ping", []string{"pong"}); err != nil {
		return fmt.Errorf("reranker health: %w", err)
	}
	return nil
}

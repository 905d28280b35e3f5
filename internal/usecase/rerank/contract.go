package rerank

import "context"

// Client scores documents against a query with a cross-encoder. Scores are
// returned in input order.
type Client interface {
	Rerank(ctx context.Context, query string, documents []string) ([]float64, error)
}

package tei

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
)

// SpladeEncoder calls the TEI /embed_sparse route for SPLADE lexical vectors.
type SpladeEncoder struct {
	http   *httpClient
	logger *zap.Logger
}

// SpladeConfig holds the sparse encoder endpoint settings.
type SpladeConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewSpladeEncoder creates a SPLADE sparse encoder client.
func NewSpladeEncoder(cfg *SpladeConfig) *SpladeEncoder {
	return &SpladeEncoder{
		http:   newHTTPClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout),
		logger: cfg.Logger,
	}
}

type embedSparseRequest struct {
	Inputs   []string `json:"inputs"`
	Truncate bool     `json:"truncate"`
}

type sparseTerm struct {
	Index uint32  `json:"index"`
	Value float32 `json:"value"`
}

// Encode implements domain.SparseEncoder. A failure is reported but never
// returned: the caller receives an empty vector and degrades to dense-only
// search.
func (s *SpladeEncoder) Encode(ctx context.Context, text string) (domain.SparseVector, error) {
	vectors, err := s.EncodeBatch(ctx, []string{text})
	if err != nil {
		return domain.SparseVector{}, err
	}
	return vectors[0], nil
}

// EncodeBatch encodes multiple texts in one call. On failure every result is
// an empty vector; the error is logged, not propagated.
func (s *SpladeEncoder) EncodeBatch(ctx context.Context, texts []string) ([]domain.SparseVector, error) {
	vectors := make([]domain.SparseVector, len(texts))
	if len(texts) == 0 {
		return vectors, nil
	}

	var raw [][]sparseTerm
	err := s.http.postJSON(ctx, "/embed_sparse", embedSparseRequest{Inputs: texts, Truncate: true}, &raw)
	if err != nil {
		metrics.SparseEncodeTotal.WithLabelValues("error").Inc()
		s.logger.Warn("sparse encode failed, degrading to dense-only", zap.Error(err))
		return vectors, nil
	}

	if len(raw) != len(texts) {
		metrics.SparseEncodeTotal.WithLabelValues("error").Inc()
		s.logger.Warn("sparse encode count mismatch, degrading to dense-only",
			zap.Int("expected", len(texts)), zap.Int("got", len(raw)))
		return vectors, nil
	}

	for i, terms := range raw {
		vectors[i] = toSparseVector(terms)
	}
	metrics.SparseEncodeTotal.WithLabelValues("success").Inc()
	return vectors, nil
}

// HealthCheck probes the sparse route with a trivial input.
func (s *SpladeEncoder) HealthCheck(ctx context.Context) error {
	var raw [][]sparseTerm
	err := s.http.postJSON(ctx, "/embed_sparse", embedSparseRequest{Inputs: []string{"ping"}, Truncate: true}, &raw)
	if err != nil {
		return fmt.Errorf("sparse encoder health: %w", err)
	}
	return nil
}

func toSparseVector(terms []sparseTerm) domain.SparseVector {
	if len(terms) == 0 {
		return domain.SparseVector{}
	}
	vec := domain.SparseVector{
		Indices: make([]uint32, len(terms)),
		Values:  make([]float32, len(terms)),
	}
	for i, t := range terms {
		vec.Indices[i] = t.Index
		vec.Values[i] = t.Value
	}
	return vec
}

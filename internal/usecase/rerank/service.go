// Package rerank implements the optional cross-encoder pass over hybrid
// search candidates. Every failure mode degrades to the un-reranked input:
// the pass improves ordering when it can and never costs availability.
package rerank

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
)

// Service reorders candidates by cross-encoder score and applies score cutoffs.
type Service struct {
	client         Client
	scoreThreshold float64
	relativeCutoff float64
	topK           int
	logger         *zap.Logger
}

// Config holds the rerank pass settings.
type Config struct {
	// ScoreThreshold is the absolute floor; candidates scoring below it are dropped.
	ScoreThreshold float64
	// RelativeCutoff drops candidates scoring below RelativeCutoff times the
	// top surviving score. Zero disables the relative cut.
	RelativeCutoff float64
	// TopK bounds the number of returned candidates. Zero or negative means unbounded.
	TopK int
}

// New creates the rerank pass. A nil client makes the pass a no-op.
func New(client Client, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		client:         client,
		scoreThreshold: cfg.ScoreThreshold,
		relativeCutoff: cfg.RelativeCutoff,
		topK:           cfg.TopK,
		logger:         logger,
	}
}

// Rerank scores the candidates against the query and returns them reordered
// by cross-encoder score with the configured cutoffs applied. On any failure
// the input is returned unchanged.
func (s *Service) Rerank(ctx context.Context, query string, candidates []cocktail.Cocktail) []cocktail.Cocktail {
	if s.client == nil || len(candidates) == 0 {
		metrics.RerankTotal.WithLabelValues("skipped").Inc()
		return candidates
	}

	documents := make([]string, len(candidates))
	for i, c := range candidates {
		documents[i] = buildDocumentText(c)
	}

	scores, err := s.client.Rerank(ctx, query, documents)
	if err != nil {
		metrics.RerankTotal.WithLabelValues("degraded").Inc()
		s.logger.Warn("rerank failed, returning original order", zap.Error(err))
		return candidates
	}
	if len(scores) != len(candidates) {
		metrics.RerankTotal.WithLabelValues("degraded").Inc()
		s.logger.Warn("rerank returned unexpected score count",
			zap.Int("expected", len(candidates)), zap.Int("got", len(scores)))
		return candidates
	}

	type scored struct {
		doc   cocktail.Cocktail
		score float64
	}

	survivors := make([]scored, 0, len(candidates))
	for i, c := range candidates {
		if c.SearchStatistics != nil {
			c.SearchStatistics.SetRerankerScore(scores[i])
		}
		if scores[i] >= s.scoreThreshold {
			survivors = append(survivors, scored{doc: c, score: scores[i]})
		}
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		return survivors[i].doc.ID < survivors[j].doc.ID
	})

	// Relative cut against the best surviving score. Scores far below the
	// leader are noise even when they clear the absolute floor.
	if s.relativeCutoff > 0 && len(survivors) > 0 {
		cutoff := survivors[0].score * s.relativeCutoff
		kept := survivors[:0]
		for _, sc := range survivors {
			if sc.score >= cutoff {
				kept = append(kept, sc)
			}
		}
		survivors = kept
	}

	if s.topK > 0 && len(survivors) > s.topK {
		survivors = survivors[:s.topK]
	}

	result := make([]cocktail.Cocktail, len(survivors))
	for i, sc := range survivors {
		result[i] = sc.doc
	}

	metrics.RerankTotal.WithLabelValues("success").Inc()
	s.logger.Debug("rerank complete",
		zap.Int("candidates", len(candidates)), zap.Int("returned", len(result)))

	return result
}

// buildDocumentText builds the text the cross-encoder scores for one
// candidate: title, descriptive title when distinct, and ingredient names.
func buildDocumentText(c cocktail.Cocktail) string {
	parts := []string{c.Title}

	if c.DescriptiveTitle != "" && c.DescriptiveTitle != c.Title {
		parts = append(parts, c.DescriptiveTitle)
	}

	if names := c.IngredientNames(); len(names) > 0 {
		parts = append(parts, "Ingredients: "+strings.Join(names, ", "))
	}

	return strings.Join(parts, ". ")
}

package cocktail

import "math"

// Score weights for the aggregate relevance formula. The strongest single
// chunk dominates, average score rewards topical consistency, and the
// log-scaled hit count caps the credit for match breadth.
const (
	maxScoreWeight = 0.6
	avgScoreWeight = 0.3
	hitCountWeight = 0.1
)

// HitResult is the score of one matching description chunk.
type HitResult struct {
	Score float64 `json:"score"`
}

// SearchStatistics aggregates all chunk-level hits of one cocktail for a
// single query. Recomputed on every request, never persisted.
type SearchStatistics struct {
	TotalScore    float64     `json:"totalScore"`
	MaxScore      float64     `json:"maxScore"`
	AvgScore      float64     `json:"avgScore"`
	WeightedScore float64     `json:"weightedScore"`
	HitCount      int         `json:"hitCount"`
	RerankerScore *float64    `json:"rerankerScore,omitempty"`
	HitResults    []HitResult `json:"hitResults"`
}

// AddHit folds one chunk score into the aggregate.
func (s *SearchStatistics) AddHit(score float64) {
	s.TotalScore += score
	s.MaxScore = math.Max(s.MaxScore, score)
	s.HitCount++
	s.HitResults = append(s.HitResults, HitResult{Score: score})
}

// Finalize computes the derived average and weighted scores:
//
//	weighted = max*0.6 + avg*0.3 + ln(hits+1)*0.1
func (s *SearchStatistics) Finalize() {
	if s.HitCount == 0 {
		return
	}
	s.AvgScore = s.TotalScore / float64(s.HitCount)
	s.WeightedScore = s.MaxScore*maxScoreWeight +
		s.AvgScore*avgScoreWeight +
		math.Log(float64(s.HitCount)+1)*hitCountWeight
}

// SetRerankerScore records the cross-encoder score for this candidate.
func (s *SearchStatistics) SetRerankerScore(score float64) {
	s.RerankerScore = &score
}

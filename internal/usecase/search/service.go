// Package search implements query resolution: the state machine that routes
// a free-text query through browse, name-match, short-query, or full
// hybrid-retrieval paths and returns scored, paginated cocktail documents.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/hit"
	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
	"github.com/cezzis-com/cocktails-aisearch/internal/usecase/intent"
)

// Resolution path labels, also used as metric label values.
const (
	pathBrowse        = "browse"
	pathExactName     = "exact_name"
	pathFuzzyName     = "fuzzy_name"
	pathShortQuery    = "short_query"
	pathHybrid        = "hybrid"
	pathDenseFallback = "dense_fallback"
)

// shortQueryLimit is the query length below which embeddings are unreliable
// and resolution falls back to substring matching over the catalog.
const shortQueryLimit = 4

const defaultTake = 10

// Request is one query-resolution request.
type Request struct {
	Query string
	Skip  int
	Take  int
	// MatchIDs is an optional id allow-list. With MatchExclusive set only
	// listed documents are returned; without it listed documents are ordered
	// first and the rest follow.
	MatchIDs       []string
	MatchExclusive bool
	// Filters is an optional caller-supplied base filter, merged with the
	// conditions extracted from the query text.
	Filters filter.Expression
}

// Service is the query resolver.
type Service struct {
	retriever Retriever
	catalog   CatalogReader
	embedder  Embedder
	sparse    SparseEncoder
	reranker  Reranker
	logger    *zap.Logger
}

// New creates a query resolver. reranker may be nil to disable the
// cross-encoder pass; sparse may be nil to force dense-only retrieval.
func New(
	retriever Retriever, catalog CatalogReader,
	embedder Embedder, sparse SparseEncoder, reranker Reranker,
	logger *zap.Logger,
) *Service {
	return &Service{
		retriever: retriever,
		catalog:   catalog,
		embedder:  embedder,
		sparse:    sparse,
		reranker:  reranker,
		logger:    logger,
	}
}

// Resolve runs the resolution state machine. States are evaluated in order
// and the first producing a result wins: browse for empty queries, exact
// then fuzzy title matching for name-shaped queries, substring catalog
// matching for short queries, and the full hybrid path otherwise.
func (s *Service) Resolve(ctx context.Context, req Request) ([]cocktail.Cocktail, error) {
	if req.Take <= 0 {
		req.Take = defaultTake
	}

	start := time.Now()
	query := strings.ToLower(strings.TrimSpace(req.Query))

	if query == "" {
		docs, err := s.browse(ctx, req)
		s.observe(pathBrowse, start, err)
		return docs, err
	}

	if name, ok := nameQuery(query); ok {
		catalog, err := s.catalog.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}

		if docs := matchExactName(catalog, name); len(docs) > 0 {
			s.observe(pathExactName, start, nil)
			return s.window(req, docs), nil
		}
		if docs := matchFuzzyName(catalog, name); len(docs) > 0 {
			s.observe(pathFuzzyName, start, nil)
			return s.window(req, docs), nil
		}
	}

	if len([]rune(query)) < shortQueryLimit {
		catalog, err := s.catalog.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		s.observe(pathShortQuery, start, nil)
		return s.window(req, matchSubstring(catalog, query)), nil
	}

	docs, path, err := s.resolveHybrid(ctx, req, query)
	s.observe(path, start, err)
	return docs, err
}

// browse returns the full catalog sorted by title.
func (s *Service) browse(ctx context.Context, req Request) ([]cocktail.Cocktail, error) {
	docs, err := s.catalog.AllByTitle(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return s.window(req, docs), nil
}

// resolveHybrid is the full path: filter extraction, hybrid retrieval,
// aggregation, the optional rerank pass, the rating-sort override, and
// pagination.
func (s *Service) resolveHybrid(ctx context.Context, req Request, query string) ([]cocktail.Cocktail, string, error) {
	filters := req.Filters
	if extracted, ok := intent.Extract(query); ok {
		filters = filters.Append(extracted.Must(), extracted.MustNot())
	}

	hits, path, err := s.retrieve(ctx, query, filters)
	if err != nil {
		return nil, path, err
	}

	docs := aggregate(hits, s.logger)

	if s.reranker != nil {
		docs = s.reranker.Rerank(ctx, query, docs)
	}

	if intent.TopRated(query) {
		sortByRating(docs)
	}

	return s.window(req, docs), path, nil
}

// retrieve embeds the query and runs fused dense+sparse retrieval, falling
// back to dense-only when no lexical signal is available. Embedding failure
// is fatal: there is no retrieval without a query vector.
func (s *Service) retrieve(ctx context.Context, query string, filters filter.Expression) ([]hit.Hit, string, error) {
	embedded, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, pathHybrid, fmt.Errorf("embed query: %w", err)
	}
	if len(embedded.Embedding) == 0 {
		return nil, pathHybrid, fmt.Errorf("%w: empty query embedding", domain.ErrEmbeddingFailed)
	}

	sparse := s.encodeSparse(ctx, query)
	if sparse.IsEmpty() {
		hits, err := s.retriever.QueryDense(ctx, embedded.Embedding, filters)
		if err != nil {
			return nil, pathDenseFallback, fmt.Errorf("dense retrieval: %w", err)
		}
		return hits, pathDenseFallback, nil
	}

	hits, err := s.retriever.QueryFused(ctx, embedded.Embedding, sparse, filters)
	if err != nil {
		return nil, pathHybrid, fmt.Errorf("fused retrieval: %w", err)
	}
	return hits, pathHybrid, nil
}

// encodeSparse produces the lexical vector. Failure and absence both mean
// "no lexical signal": the caller degrades to dense-only retrieval.
func (s *Service) encodeSparse(ctx context.Context, query string) domain.SparseVector {
	if s.sparse == nil {
		return domain.SparseVector{}
	}
	sparse, err := s.sparse.Encode(ctx, query)
	if err != nil {
		s.logger.Warn("sparse encoding failed, falling back to dense-only retrieval", zap.Error(err))
		return domain.SparseVector{}
	}
	return sparse
}

// window applies the id allow-list and the skip/take page to a resolved
// document list.
func (s *Service) window(req Request, docs []cocktail.Cocktail) []cocktail.Cocktail {
	docs = applyMatchIDs(docs, req.MatchIDs, req.MatchExclusive)
	return paginate(docs, req.Skip, req.Take)
}

// applyMatchIDs partitions documents by the allow-list. Exclusive keeps only
// listed documents; non-exclusive moves them to the front and keeps the rest
// behind them.
func applyMatchIDs(docs []cocktail.Cocktail, ids []string, exclusive bool) []cocktail.Cocktail {
	if len(ids) == 0 {
		return docs
	}

	allowed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}

	matched := make([]cocktail.Cocktail, 0, len(docs))
	var rest []cocktail.Cocktail
	for _, doc := range docs {
		if _, ok := allowed[doc.ID]; ok {
			matched = append(matched, doc)
		} else if !exclusive {
			rest = append(rest, doc)
		}
	}
	return append(matched, rest...)
}

func (s *Service) observe(path string, start time.Time, err error) {
	if err != nil {
		return
	}
	metrics.SearchPathTotal.WithLabelValues(path).Inc()
	metrics.SearchDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
}

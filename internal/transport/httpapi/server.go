// Package httpapi exposes the search engine over HTTP with chi.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
	logpkg "github.com/cezzis-com/cocktails-aisearch/internal/logger"
	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
	ingestuc "github.com/cezzis-com/cocktails-aisearch/internal/usecase/ingest"
	searchuc "github.com/cezzis-com/cocktails-aisearch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	search        *searchuc.Service
	ingest        *ingestuc.Service
	store         domain.HealthChecker
	logger        *zap.Logger
	hostKeys      []string
	errorHandlers []errorHandler
}

// NewServer creates the HTTP API server.
func NewServer(
	search *searchuc.Service,
	ingest *ingestuc.Service,
	store domain.HealthChecker,
	hostKeys []string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		ingest:   ingest,
		store:    store,
		hostKeys: hostKeys,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, "not_found"),
		sentinelHandler(domain.ErrEmbeddingFailed, http.StatusBadGateway, "embedding_failed"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding_provider_error"),
		sentinelHandler(domain.ErrVectorStoreUnavailable, http.StatusServiceUnavailable, "vector_store_unavailable"),
	}
	return s
}

// Mount registers all routes on the given router. Middleware is assembled
// by the composition root.
func (s *Server) Mount(r chi.Router) {
	r.Get("/v1/cocktails/search", s.SearchCocktails)
	r.Get("/v1/cocktails/typeahead", s.TypeAhead)
	r.Put("/v1/cocktails/embeddings", s.EmbedCocktail)
	r.Delete("/v1/cocktails/embeddings/{cocktailId}", s.DeleteEmbedding)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Router assembles a standalone router with the default middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(HostKeyMiddleware(s.hostKeys, s.logger))
	r.Use(metrics.Middleware())
	s.Mount(r)
	return r
}

// cocktailsResponse is the search and typeahead response envelope.
type cocktailsResponse struct {
	Items []cocktail.Cocktail `json:"items"`
}

// SearchCocktails handles GET /v1/cocktails/search.
func (s *Server) SearchCocktails(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, ok := intParam(w, q.Get("skip"), "skip")
	if !ok {
		return
	}
	take, ok := intParam(w, q.Get("take"), "take")
	if !ok {
		return
	}

	filters, err := parseFilters(q["filters"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	req := searchuc.Request{
		Query:          q.Get("q"),
		Skip:           skip,
		Take:           take,
		MatchIDs:       splitParam(q.Get("ids")),
		MatchExclusive: q.Get("exclusive") == "true",
		Filters:        filters,
	}

	docs, err := s.search.Resolve(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cocktailsResponse{Items: emptyAsList(docs)})
}

// TypeAhead handles GET /v1/cocktails/typeahead.
func (s *Server) TypeAhead(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	skip, ok := intParam(w, q.Get("skip"), "skip")
	if !ok {
		return
	}
	take, ok := intParam(w, q.Get("take"), "take")
	if !ok {
		return
	}

	docs, err := s.search.TypeAhead(r.Context(), q.Get("q"), skip, take)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, cocktailsResponse{Items: emptyAsList(docs)})
}

// embedRequest is the PUT /v1/cocktails/embeddings body.
type embedRequest struct {
	ContentChunks []cocktail.DescriptionChunk `json:"contentChunks"`
	CocktailModel cocktail.Cocktail           `json:"cocktailEmbeddingModel"`
	Keywords      cocktail.Keywords           `json:"cocktailKeywords"`
}

// EmbedCocktail handles PUT /v1/cocktails/embeddings.
func (s *Server) EmbedCocktail(w http.ResponseWriter, r *http.Request) {
	var req embedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if req.CocktailModel.ID == "" {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", "cocktailEmbeddingModel.id is required")
		return
	}
	if len(req.ContentChunks) == 0 {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", "contentChunks must not be empty")
		return
	}

	if err := s.ingest.Embed(r.Context(), req.CocktailModel, req.Keywords, req.ContentChunks); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteEmbedding handles DELETE /v1/cocktails/embeddings/{cocktailId}.
func (s *Server) DeleteEmbedding(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "cocktailId")
	if id == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "cocktail id is required")
		return
	}

	if err := s.ingest.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// healthResponse is the GET /health response.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health, reporting vector-store reachability.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"vector_store": "ok"}
	status, httpStatus := "healthy", http.StatusOK

	if err := s.store.HealthCheck(r.Context()); err != nil {
		s.logger.Warn("health check failed", zap.Error(err))
		checks["vector_store"] = "unavailable"
		status, httpStatus = "unhealthy", http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{Status: status, Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// filterableFields are the payload keys callers may filter on directly.
var filterableFields = map[string]bool{
	filter.FieldIsIba:           true,
	filter.FieldGlassware:       true,
	filter.FieldIngredientWords: true,
	filter.FieldBaseSpirit:      true,
	filter.FieldSpiritSubtype:   true,
	filter.FieldFlavorProfile:   true,
	filter.FieldCocktailFamily:  true,
	filter.FieldTechnique:       true,
	filter.FieldStrength:        true,
	filter.FieldTemperature:     true,
	filter.FieldSeason:          true,
	filter.FieldOccasion:        true,
	filter.FieldMood:            true,
}

// parseFilters parses caller-supplied "field:value" pairs into must
// conditions merged with the query-derived filter.
func parseFilters(raw []string) (filter.Expression, error) {
	if len(raw) == 0 {
		return filter.Expression{}, nil
	}
	must := make([]filter.Condition, 0, len(raw))
	for _, item := range raw {
		key, value, found := strings.Cut(item, ":")
		if !found || key == "" || value == "" {
			return filter.Expression{}, errors.New("filters entries must be field:value pairs")
		}
		if !filterableFields[key] {
			return filter.Expression{}, errors.New("unknown filter field: " + key)
		}
		if key == filter.FieldIsIba {
			must = append(must, filter.NewMatchBool(key, value == "true"))
			continue
		}
		must = append(must, filter.NewMatch(key, value))
	}
	return filter.NewExpression(must, nil), nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(w, http.StatusBadRequest, "validation_failed", name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}

// emptyAsList keeps the items field a JSON array even when empty.
func emptyAsList(docs []cocktail.Cocktail) []cocktail.Cocktail {
	if docs == nil {
		return []cocktail.Cocktail{}
	}
	return docs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrEmbeddingFailed,
		domain.ErrEmbeddingProviderError,
		domain.ErrVectorStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	reqLogger := logpkg.FromContext(r.Context())
	reqLogger.Warn("domain error", zap.Error(err))

	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	reqLogger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/config"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	logpkg "github.com/cezzis-com/cocktails-aisearch/internal/logger"
	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
	"github.com/cezzis-com/cocktails-aisearch/internal/repository/catalog"
	"github.com/cezzis-com/cocktails-aisearch/internal/repository/embcache"
	"github.com/cezzis-com/cocktails-aisearch/internal/repository/vector"
	"github.com/cezzis-com/cocktails-aisearch/internal/transport/httpapi"
	openaiEmb "github.com/cezzis-com/cocktails-aisearch/internal/transport/openai"
	"github.com/cezzis-com/cocktails-aisearch/internal/transport/tei"
	ingestuc "github.com/cezzis-com/cocktails-aisearch/internal/usecase/ingest"
	rerankuc "github.com/cezzis-com/cocktails-aisearch/internal/usecase/rerank"
	searchuc "github.com/cezzis-com/cocktails-aisearch/internal/usecase/search"
	"github.com/cezzis-com/cocktails-aisearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting aisearch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("qdrant_addr", cfg.Qdrant.Addr),
		zap.String("collection", cfg.Qdrant.Collection),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Vector store
	store, err := vector.New(vector.Config{
		Addr:           cfg.Qdrant.Addr,
		Collection:     cfg.Qdrant.Collection,
		Limit:          cfg.Qdrant.SearchLimit,
		PrefetchLimit:  cfg.Qdrant.PrefetchLimit,
		ScoreThreshold: cfg.Qdrant.ScoreThreshold,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create vector repository", zap.Error(err))
	}
	defer func() { _ = store.Close() }()

	// Dense embedder with LRU caching
	queryEmbedder, batchEmbedder, err := buildEmbedders(cfg.Embedding, logger)
	if err != nil {
		logger.Fatal("Failed to create embedders", zap.Error(err))
	}
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
	)

	// Sparse encoder — optional; without it retrieval is dense-only
	var sparse *tei.SpladeEncoder
	if cfg.Splade.Enabled {
		sparse = tei.NewSpladeEncoder(&tei.SpladeConfig{
			BaseURL: cfg.Splade.BaseURL,
			APIKey:  cfg.Splade.APIKey,
			Timeout: time.Duration(cfg.Splade.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		logger.Info("Sparse encoder enabled", zap.String("base_url", cfg.Splade.BaseURL))
	}

	// Cross-encoder rerank pass — optional
	var rerankClient rerankuc.Client
	if cfg.Reranker.Enabled {
		rerankClient = tei.NewReranker(&tei.RerankerConfig{
			BaseURL: cfg.Reranker.BaseURL,
			APIKey:  cfg.Reranker.APIKey,
			Timeout: time.Duration(cfg.Reranker.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		logger.Info("Reranker enabled", zap.String("base_url", cfg.Reranker.BaseURL))
	}
	rerankSvc := rerankuc.New(rerankClient, rerankuc.Config{
		ScoreThreshold: cfg.Reranker.ScoreThreshold,
		RelativeCutoff: cfg.Reranker.RelativeCutoff,
		TopK:           cfg.Reranker.TopK,
	}, logger)

	// Catalog cache over the vector store's full scroll
	catalogCache := catalog.New(store, logger)

	// Use case services
	var sparseEncoder searchuc.SparseEncoder
	var batchSparse ingestuc.SparseEncoder
	if sparse != nil {
		sparseEncoder = sparse
		batchSparse = sparse
	}
	var reranker searchuc.Reranker
	if cfg.Reranker.Enabled {
		reranker = rerankSvc
	}
	searchSvc := searchuc.New(store, catalogCache, queryEmbedder, sparseEncoder, reranker, logger)
	ingestSvc := ingestuc.New(store, batchEmbedder, batchSparse, catalogCache, logger)

	// HTTP server
	server := httpapi.NewServer(searchSvc, ingestSvc, store, cfg.Auth.HostKeys, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.HostKeyMiddleware(cfg.Auth.HostKeys, logger))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildEmbedders assembles the query embedder chain (OpenAI -> LRU cache)
// and the uncached batch embedder used by ingestion.
func buildEmbedders(cfg config.EmbeddingConfig, logger *zap.Logger) (domain.Embedder, domain.BatchEmbedder, error) {
	base := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:   cfg.APIKey,
		BaseURL:  cfg.BaseURL,
		Model:    cfg.Model,
		Provider: cfg.Provider,
		Logger:   logger,
	})

	// Only query embeddings are cached: ingestion texts rarely repeat.
	cached, err := embcache.New(base, cfg.CacheSize, metrics.EmbeddingCacheTotal, logger)
	if err != nil {
		return nil, nil, err
	}

	return cached, base, nil
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

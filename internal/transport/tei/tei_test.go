package tei

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

func TestSpladeEncoder_Encode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed_sparse" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}

		var req embedSparseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Inputs) != 1 || req.Inputs[0] != "gin cocktail" {
			t.Errorf("unexpected inputs: %v", req.Inputs)
		}
		if !req.Truncate {
			t.Error("expected truncate=true")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([][]sparseTerm{
			{{Index: 101, Value: 0.8}, {Index: 2048, Value: 0.3}},
		})
	}))
	defer server.Close()

	enc := NewSpladeEncoder(&SpladeConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Logger:  zap.NewNop(),
	})

	vec, err := enc.Encode(context.Background(), "gin cocktail")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if vec.IsEmpty() {
		t.Fatal("expected non-empty sparse vector")
	}
	if len(vec.Indices) != 2 || vec.Indices[0] != 101 || vec.Indices[1] != 2048 {
		t.Errorf("unexpected indices: %v", vec.Indices)
	}
	if vec.Values[0] != 0.8 || vec.Values[1] != 0.3 {
		t.Errorf("unexpected values: %v", vec.Values)
	}
}

func TestSpladeEncoder_ServerErrorDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	enc := NewSpladeEncoder(&SpladeConfig{
		BaseURL: server.URL,
		Logger:  zap.NewNop(),
	})

	vec, err := enc.Encode(context.Background(), "gin")
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if !vec.IsEmpty() {
		t.Errorf("expected empty vector on server error, got %v", vec)
	}
}

func TestSpladeEncoder_CountMismatchDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// One vector returned for two inputs.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([][]sparseTerm{
			{{Index: 1, Value: 0.5}},
		})
	}))
	defer server.Close()

	enc := NewSpladeEncoder(&SpladeConfig{
		BaseURL: server.URL,
		Logger:  zap.NewNop(),
	})

	vectors, err := enc.EncodeBatch(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("expected degraded result, got error: %v", err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	for i, vec := range vectors {
		if !vec.IsEmpty() {
			t.Errorf("vector %d should be empty on mismatch, got %v", i, vec)
		}
	}
}

func TestSpladeEncoder_EmptyBatch(t *testing.T) {
	enc := NewSpladeEncoder(&SpladeConfig{
		BaseURL: "http://unused",
		Logger:  zap.NewNop(),
	})

	vectors, err := enc.EncodeBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no vectors, got %d", len(vectors))
	}
}

func TestReranker_Rerank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rerank" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req rerankRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Query != "refreshing gin drink" {
			t.Errorf("unexpected query: %s", req.Query)
		}
		if len(req.Texts) != 3 {
			t.Errorf("expected 3 texts, got %d", len(req.Texts))
		}

		// Sorted by score descending, tagged with original index.
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]rerankResult{
			{Index: 2, Score: 0.91},
			{Index: 0, Score: 0.42},
			{Index: 1, Score: 0.05},
		})
	}))
	defer server.Close()

	rr := NewReranker(&RerankerConfig{
		BaseURL: server.URL,
		Logger:  zap.NewNop(),
	})

	scores, err := rr.Rerank(context.Background(), "refreshing gin drink", []string{"doc a", "doc b", "doc c"})
	if err != nil {
		t.Fatalf("Rerank failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	// Scores must be mapped back to input order.
	if scores[0] != 0.42 || scores[1] != 0.05 || scores[2] != 0.91 {
		t.Errorf("unexpected score order: %v", scores)
	}
}

func TestReranker_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]rerankResult{{Index: 0, Score: 0.5}})
	}))
	defer server.Close()

	rr := NewReranker(&RerankerConfig{
		BaseURL: server.URL,
		Logger:  zap.NewNop(),
	})

	if _, err := rr.Rerank(context.Background(), "q", []string{"a", "b"}); err == nil {
		t.Fatal("expected error for score count mismatch")
	}
}

func TestReranker_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "cross-encoder unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	rr := NewReranker(&RerankerConfig{
		BaseURL: server.URL,
		Logger:  zap.NewNop(),
	})

	if _, err := rr.Rerank(context.Background(), "q", []string{"a"}); err == nil {
		t.Fatal("expected error for 502 response")
	}
}

func TestReranker_EmptyDocuments(t *testing.T) {
	rr := NewReranker(&RerankerConfig{
		BaseURL: "http://unused",
		Logger:  zap.NewNop(),
	})

	scores, err := rr.Rerank(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores != nil {
		t.Errorf("expected nil scores for empty input, got %v", scores)
	}
}

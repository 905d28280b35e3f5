package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterEmbeddingMetrics()
	os.Exit(m.Run())
}

func newTestEmbedder(baseURL string) *Embedder {
	return NewEmbedder(&Config{
		APIKey:   "test-key",
		BaseURL:  baseURL,
		Model:    "test-model",
		Provider: "tei",
		Logger:   zap.NewNop(),
	})
}

// embeddingItem renders one element of the response "data" array.
func embeddingItem(index int, vec ...float32) string {
	out := "{\"object\":\"embedding\",\"index\":" + fmt.Sprint(index) + ",\"embedding\":["
	for i, v := range vec {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%g", v)
	}
	return out + "]}"
}

func embeddingsServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %s, want /embeddings", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization = %q, want bearer test-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestEmbedder_Embed(t *testing.T) {
	body := `{"object":"list","model":"test-model","data":[` +
		embeddingItem(0, 0.1, 0.2, 0.3, 0.4) +
		`],"usage":{"prompt_tokens":10,"total_tokens":10}}`
	server := embeddingsServer(t, body)
	defer server.Close()

	result, err := newTestEmbedder(server.URL).Embed(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}

	want := []float32{0.1, 0.2, 0.3, 0.4}
	if len(result.Embedding) != len(want) {
		t.Fatalf("dimensions = %d, want %d", len(result.Embedding), len(want))
	}
	for i, v := range want {
		if result.Embedding[i] != v {
			t.Errorf("vec[%d] = %f, want %f", i, result.Embedding[i], v)
		}
	}
	if result.PromptTokens != 10 || result.TotalTokens != 10 {
		t.Errorf("usage = %d/%d, want 10/10", result.PromptTokens, result.TotalTokens)
	}
}

func TestEmbedder_BatchEmbedRestoresOrder(t *testing.T) {
	// The provider answers out of order; positions come from the index field.
	body := `{"object":"list","model":"test-model","data":[` +
		embeddingItem(1, 0.3, 0.4) + "," + embeddingItem(0, 0.1, 0.2) +
		`],"usage":{"prompt_tokens":20,"total_tokens":20}}`
	server := embeddingsServer(t, body)
	defer server.Close()

	result, err := newTestEmbedder(server.URL).BatchEmbed(context.Background(), []string{"hello", "world"})
	if err != nil {
		t.Fatalf("BatchEmbed: %v", err)
	}

	if len(result.Embeddings) != 2 {
		t.Fatalf("embeddings = %d, want 2", len(result.Embeddings))
	}
	if result.Embeddings[0][0] != 0.1 || result.Embeddings[1][0] != 0.3 {
		t.Errorf("order not restored: %v", result.Embeddings)
	}
	if result.TotalTokens != 20 {
		t.Errorf("TotalTokens = %d, want 20", result.TotalTokens)
	}
}

func TestEmbedder_BatchEmbedEmptyInput(t *testing.T) {
	result, err := newTestEmbedder("http://unused").BatchEmbed(context.Background(), nil)
	if err != nil {
		t.Fatalf("BatchEmbed: %v", err)
	}
	if result.Embeddings != nil {
		t.Errorf("embeddings = %v, want nil without a request", result.Embeddings)
	}
}

func TestEmbedder_BatchEmbedCountMismatch(t *testing.T) {
	// One vector for two inputs.
	body := `{"object":"list","model":"test-model","data":[` +
		embeddingItem(0, 0.1) +
		`],"usage":{"prompt_tokens":5,"total_tokens":5}}`
	server := embeddingsServer(t, body)
	defer server.Close()

	_, err := newTestEmbedder(server.URL).BatchEmbed(context.Background(), []string{"a", "b"})
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("err = %v, want provider error", err)
	}
}

func TestEmbedder_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded","type":"rate_limit_error"}}`))
	}))
	defer server.Close()

	_, err := newTestEmbedder(server.URL).Embed(context.Background(), "hello")
	if !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("err = %v, want provider error", err)
	}
}

package embcache

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
)

type mockEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 7}, nil
}

func TestEmbed_CaseInsensitiveKey(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.1, 0.2}}
	cached, err := New(inner, 10, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	if _, err := cached.Embed(ctx, "Tequila Cocktails"); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.Embed(ctx, "tequila cocktails"); err != nil {
		t.Fatal(err)
	}
	if _, err := cached.Embed(ctx, "  tequila cocktails  "); err != nil {
		t.Fatal(err)
	}

	if inner.calls != 1 {
		t.Errorf("expected exactly 1 inner call, got %d", inner.calls)
	}
}

func TestEmbed_LRUEviction(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.5}}
	cached, err := New(inner, 3, nil, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i := 0; i < 4; i++ {
		if _, err := cached.Embed(ctx, fmt.Sprintf("query %d", i)); err != nil {
			t.Fatal(err)
		}
	}
	if cached.Len() != 3 {
		t.Fatalf("expected cache size 3, got %d", cached.Len())
	}

	// "query 0" was least recently used and must have been evicted.
	calls := inner.calls
	if _, err := cached.Embed(ctx, "query 0"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != calls+1 {
		t.Error("expected a miss for the evicted entry")
	}

	// "query 3" is still resident.
	calls = inner.calls
	if _, err := cached.Embed(ctx, "query 3"); err != nil {
		t.Fatal(err)
	}
	if inner.calls != calls {
		t.Error("expected a hit for a resident entry")
	}
}

func TestEmbed_HitRefreshesRecency(t *testing.T) {
	inner := &mockEmbedder{vec: []float32{0.5}}
	cached, _ := New(inner, 2, nil, zap.NewNop())

	ctx := context.Background()
	_, _ = cached.Embed(ctx, "a")
	_, _ = cached.Embed(ctx, "b")
	_, _ = cached.Embed(ctx, "a") // refresh "a"
	_, _ = cached.Embed(ctx, "c") // evicts "b"

	calls := inner.calls
	_, _ = cached.Embed(ctx, "a")
	if inner.calls != calls {
		t.Error(`"a" should still be cached after being refreshed`)
	}
	_, _ = cached.Embed(ctx, "b")
	if inner.calls != calls+1 {
		t.Error(`"b" should have been evicted as least recently used`)
	}
}

func TestEmbed_ErrorNotCached(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	cached, _ := New(inner, 10, nil, zap.NewNop())

	ctx := context.Background()
	if _, err := cached.Embed(ctx, "query"); err == nil {
		t.Fatal("expected error")
	}

	inner.err = nil
	inner.vec = []float32{0.3}
	if _, err := cached.Embed(ctx, "query"); err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("failed result must not be cached, got %d calls", inner.calls)
	}
}

func TestEmbed_EmptyVectorIsFatal(t *testing.T) {
	inner := &mockEmbedder{vec: nil}
	cached, _ := New(inner, 10, nil, zap.NewNop())

	_, err := cached.Embed(context.Background(), "query")
	if !errors.Is(err, domain.ErrEmbeddingFailed) {
		t.Fatalf("expected ErrEmbeddingFailed, got %v", err)
	}
}

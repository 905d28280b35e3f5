// Package catalog maintains a lazily-populated, process-lifetime snapshot
// of the full cocktail catalog, built by paginating the vector store's
// scroll listing. The snapshot backs browsing, name lookups, and the
// short-query fallback without touching the embedding path.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
)

// Scroller pages through every record of the vector store.
type Scroller interface {
	ScrollAll(ctx context.Context) ([]cocktail.Cocktail, error)
}

// Cache is the one piece of mutable shared state in the engine. Reads go
// through an RLock; the cold-start fetch is guarded by a double-checked
// write lock so concurrent first callers trigger exactly one scroll.
type Cache struct {
	scroller Scroller
	logger   *zap.Logger

	mu        sync.RWMutex
	cocktails []cocktail.Cocktail
	loaded    bool
}

// New creates an empty catalog cache.
func New(scroller Scroller, logger *zap.Logger) *Cache {
	return &Cache{scroller: scroller, logger: logger}
}

// All returns the full catalog, fetching and caching it on first use. The
// returned slice is shared: callers must not mutate it.
func (c *Cache) All(ctx context.Context) ([]cocktail.Cocktail, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.cocktails, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have populated the cache while we waited.
	if c.loaded {
		return c.cocktails, nil
	}

	c.logger.Info("Populating cocktail catalog cache")
	cocktails, err := c.scroller.ScrollAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("populate catalog cache: %w", err)
	}

	c.cocktails = cocktails
	c.loaded = true
	c.logger.Info("Cached cocktails", zap.Int("count", len(cocktails)))
	return c.cocktails, nil
}

// AllByTitle returns a fresh copy of the catalog sorted ascending by title.
func (c *Cache) AllByTitle(ctx context.Context) ([]cocktail.Cocktail, error) {
	all, err := c.All(ctx)
	if err != nil {
		return nil, err
	}
	sorted := make([]cocktail.Cocktail, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Title == sorted[j].Title {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Title < sorted[j].Title
	})
	return sorted, nil
}

// Clear drops the snapshot; the next read repopulates it.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cocktails = nil
	c.loaded = false
}

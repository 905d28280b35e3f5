// Package ingest implements the embedding-side write path: embedding a
// cocktail's description chunks and replacing its points in the vector store.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/repository/vector"
)

// CatalogInvalidator clears the catalog snapshot after a write so the next
// name lookup sees the updated document.
type CatalogInvalidator interface {
	Clear()
}

// Service embeds description chunks and writes cocktail points.
type Service struct {
	writer   VectorWriter
	embedder BatchEmbedder
	sparse   SparseEncoder
	catalog  CatalogInvalidator
	logger   *zap.Logger
}

// New creates an ingestion service. sparse may be nil to store dense-only
// points; catalog may be nil when no snapshot invalidation is needed.
func New(writer VectorWriter, embedder BatchEmbedder, sparse SparseEncoder, catalog CatalogInvalidator, logger *zap.Logger) *Service {
	return &Service{
		writer:   writer,
		embedder: embedder,
		sparse:   sparse,
		catalog:  catalog,
		logger:   logger,
	}
}

// Embed replaces a cocktail's stored vectors: existing points are deleted,
// each non-blank chunk is embedded, and the resulting points are upserted
// with the full payload schema.
func (s *Service) Embed(ctx context.Context, doc cocktail.Cocktail, kw cocktail.Keywords, chunks []cocktail.DescriptionChunk) error {
	if doc.ID == "" {
		return errors.New("cocktail model has no id")
	}

	embeddable := make([]cocktail.DescriptionChunk, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) != "" {
			embeddable = append(embeddable, chunk)
		}
	}
	if len(embeddable) == 0 {
		return errors.New("no embeddable chunks provided")
	}

	s.logger.Info("Processing cocktail embedding request",
		zap.String("cocktail_id", doc.ID),
		zap.Int("chunks", len(embeddable)),
	)

	texts := make([]string, len(embeddable))
	for i, chunk := range embeddable {
		texts[i] = chunk.Content
	}

	dense, err := s.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks for %s: %w", doc.ID, err)
	}
	if len(dense.Embeddings) != len(texts) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingFailed, len(dense.Embeddings), len(texts))
	}

	sparse := s.encodeSparse(ctx, texts)

	points := make([]vector.ChunkVectors, len(embeddable))
	for i, chunk := range embeddable {
		points[i] = vector.ChunkVectors{
			Chunk: chunk,
			Dense: dense.Embeddings[i],
		}
		if sparse != nil {
			points[i].Sparse = sparse[i]
		}
	}

	// Delete first: the chunking may have changed and stale points would
	// otherwise survive under their old content hashes.
	if err := s.writer.DeleteVectors(ctx, doc.ID); err != nil {
		return err
	}
	if err := s.writer.StoreVectors(ctx, doc, kw, points); err != nil {
		return err
	}

	if s.catalog != nil {
		s.catalog.Clear()
	}

	s.logger.Info("Cocktail embedding stored",
		zap.String("cocktail_id", doc.ID),
		zap.Int("tokens", dense.TotalTokens),
	)
	return nil
}

// Delete removes every stored point of a cocktail.
func (s *Service) Delete(ctx context.Context, cocktailID string) error {
	if cocktailID == "" {
		return errors.New("cocktail id is required")
	}
	if err := s.writer.DeleteVectors(ctx, cocktailID); err != nil {
		return err
	}
	if s.catalog != nil {
		s.catalog.Clear()
	}
	return nil
}

func (s *Service) encodeSparse(ctx context.Context, texts []string) []domain.SparseVector {
	if s.sparse == nil {
		return nil
	}
	vectors, err := s.sparse.EncodeBatch(ctx, texts)
	if err != nil || len(vectors) != len(texts) {
		s.logger.Warn("sparse encoding unavailable, storing dense-only points", zap.Error(err))
		return nil
	}
	return vectors
}

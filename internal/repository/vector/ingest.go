package vector

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
)

// ChunkVectors pairs one description chunk with its computed embeddings.
type ChunkVectors struct {
	Chunk  cocktail.DescriptionChunk
	Dense  []float32
	Sparse domain.SparseVector
}

// StoreVectors upserts all chunk points of one cocktail. Point ids derive
// from chunk content, so re-ingesting unchanged text overwrites in place.
func (r *Repo) StoreVectors(
	ctx context.Context, doc cocktail.Cocktail, kw cocktail.Keywords, chunks []ChunkVectors,
) error {
	if len(chunks) == 0 {
		return nil
	}

	modelJSON, err := doc.ModelJSON()
	if err != nil {
		return err
	}

	r.logger.Info("Storing cocktail embedding vectors",
		zap.String("cocktail_id", doc.ID),
		zap.Int("chunks", len(chunks)),
	)

	points := buildPoints(doc, kw, chunks, modelJSON)

	wait := true
	_, err = r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.cfg.Collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("%w: upsert %d points for %s: %v",
			domain.ErrVectorStoreUnavailable, len(points), doc.ID, err)
	}
	return nil
}

// buildPoints assembles the upsert points: content-hash UUID identity, named
// dense vector, named sparse vector only when a lexical signal exists.
func buildPoints(
	doc cocktail.Cocktail, kw cocktail.Keywords, chunks []ChunkVectors, modelJSON []byte,
) []*pb.PointStruct {
	points := make([]*pb.PointStruct, len(chunks))
	for i, cv := range chunks {
		named := map[string]*pb.Vector{
			denseVectorName: {Data: cv.Dense},
		}
		if !cv.Sparse.IsEmpty() {
			named[sparseVectorName] = &pb.Vector{
				Data:    cv.Sparse.Values,
				Indices: &pb.SparseIndices{Data: cv.Sparse.Indices},
			}
		}

		points[i] = &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{Uuid: cv.Chunk.PointID()},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vectors{
					Vectors: &pb.NamedVectors{Vectors: named},
				},
			},
			Payload: chunkPayload(doc, cv.Chunk, kw, modelJSON),
		}
	}
	return points
}

// DeleteVectors removes every point belonging to a cocktail id. Used before
// re-ingestion when the chunking changed.
func (r *Repo) DeleteVectors(ctx context.Context, cocktailID string) error {
	r.logger.Info("Deleting cocktail embedding vectors", zap.String("cocktail_id", cocktailID))

	wait := true
	_, err := r.points.Delete(ctx, &pb.DeletePoints{
		CollectionName: r.cfg.Collection,
		Wait:           &wait,
		Points: &pb.PointsSelector{
			PointsSelectorOneOf: &pb.PointsSelector_Filter{
				Filter: &pb.Filter{
					Must: []*pb.Condition{{
						ConditionOneOf: &pb.Condition_Field{
							Field: &pb.FieldCondition{
								Key: payloadCocktailID,
								Match: &pb.Match{
									MatchValue: &pb.Match_Keyword{Keyword: cocktailID},
								},
							},
						},
					}},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: delete points for %s: %v", domain.ErrVectorStoreUnavailable, cocktailID, err)
	}
	return nil
}

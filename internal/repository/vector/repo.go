// Package vector owns all Qdrant operations: dense and fused dense+sparse
// similarity queries, full-catalog scrolling, and chunk upsert/delete for
// the ingestion surface. The collection stores one point per description
// chunk under two named vector spaces, "dense" and "sparse".
package vector

import (
	"context"
	"fmt"

	pb "github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/cezzis-com/cocktails-aisearch/internal/domain"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/cocktail"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/filter"
	"github.com/cezzis-com/cocktails-aisearch/internal/domain/search/hit"
)

// Named vector spaces of the collection.
const (
	denseVectorName  = "dense"
	sparseVectorName = "sparse"
)

// scrollBatchSize is the page size for full-catalog scrolling.
const scrollBatchSize = 100

// Config holds the Qdrant connection settings.
type Config struct {
	Addr           string
	Collection     string
	Limit          int
	PrefetchLimit  int
	ScoreThreshold float32
}

// Repo is the Qdrant-backed vector repository.
type Repo struct {
	conn        *grpc.ClientConn
	points      pb.PointsClient
	collections pb.CollectionsClient
	cfg         Config
	logger      *zap.Logger
}

// New dials Qdrant over gRPC and creates the repository.
func New(cfg Config, logger *zap.Logger) (*Repo, error) {
	conn, err := grpc.NewClient(cfg.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("vector: dial qdrant %s: %w", cfg.Addr, err)
	}
	return &Repo{
		conn:        conn,
		points:      pb.NewPointsClient(conn),
		collections: pb.NewCollectionsClient(conn),
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// Close closes the underlying gRPC connection.
func (r *Repo) Close() error {
	return r.conn.Close()
}

// HealthCheck verifies the collection is reachable.
func (r *Repo) HealthCheck(ctx context.Context) error {
	_, err := r.collections.Get(ctx, &pb.GetCollectionInfoRequest{CollectionName: r.cfg.Collection})
	if err != nil {
		return fmt.Errorf("vector: collection info %s: %w", r.cfg.Collection, err)
	}
	return nil
}

// QueryDense runs a filtered nearest-neighbor query against the dense
// vector space and returns chunk-level hits.
func (r *Repo) QueryDense(ctx context.Context, dense []float32, f filter.Expression) ([]hit.Hit, error) {
	limit := uint64(r.cfg.Limit)
	req := &pb.QueryPoints{
		CollectionName: r.cfg.Collection,
		Query:          nearestDense(dense),
		Using:          ptr(denseVectorName),
		Filter:         toQdrantFilter(f),
		Limit:          &limit,
		ScoreThreshold: ptr(r.cfg.ScoreThreshold),
		WithPayload:    payloadSelector(),
	}

	resp, err := r.points.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: dense query: %v", domain.ErrVectorStoreUnavailable, err)
	}
	return r.toHits(resp.GetResult())
}

// QueryFused runs dense and sparse prefetch branches under the same filter
// and lets Qdrant fuse the two ranked lists with reciprocal rank fusion.
// RRF is used instead of linear blending because cosine and lexical scores
// are not on comparable scales.
func (r *Repo) QueryFused(
	ctx context.Context, dense []float32, sparse domain.SparseVector, f filter.Expression,
) ([]hit.Hit, error) {
	qf := toQdrantFilter(f)
	prefetchLimit := uint64(r.cfg.PrefetchLimit)
	limit := uint64(r.cfg.Limit)

	req := &pb.QueryPoints{
		CollectionName: r.cfg.Collection,
		Prefetch: []*pb.PrefetchQuery{
			{
				Query:  nearestDense(dense),
				Using:  ptr(denseVectorName),
				Filter: qf,
				Limit:  &prefetchLimit,
			},
			{
				Query:  nearestSparse(sparse),
				Using:  ptr(sparseVectorName),
				Filter: qf,
				Limit:  &prefetchLimit,
			},
		},
		Query:       &pb.Query{Variant: &pb.Query_Fusion{Fusion: pb.Fusion_RRF}},
		Limit:       &limit,
		WithPayload: payloadSelector(),
	}

	resp, err := r.points.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: fused query: %v", domain.ErrVectorStoreUnavailable, err)
	}
	return r.toHits(resp.GetResult())
}

// ScrollAll pages through every point of the collection and returns one
// decoded document per distinct cocktail id.
func (r *Repo) ScrollAll(ctx context.Context) ([]cocktail.Cocktail, error) {
	var (
		cocktails []cocktail.Cocktail
		seen      = make(map[string]struct{})
		offset    *pb.PointId
	)

	batch := uint32(scrollBatchSize)
	for {
		resp, err := r.points.Scroll(ctx, &pb.ScrollPoints{
			CollectionName: r.cfg.Collection,
			Limit:          &batch,
			Offset:         offset,
			WithPayload:    payloadSelector(),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: scroll: %v", domain.ErrVectorStoreUnavailable, err)
		}

		for _, point := range resp.GetResult() {
			id, modelJSON, err := identityFromPayload(point.GetPayload())
			if err != nil {
				r.logger.Warn("Skipping point with malformed payload", zap.Error(err))
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			doc, err := cocktail.FromModelJSON(modelJSON)
			if err != nil {
				return nil, fmt.Errorf("scroll point %s: %w", id, err)
			}
			seen[id] = struct{}{}
			cocktails = append(cocktails, doc)
		}

		offset = resp.GetNextPageOffset()
		if offset == nil {
			break
		}
	}

	return cocktails, nil
}

// toHits converts scored points into chunk hits, failing loudly on payloads
// that do not carry the expected identity fields.
func (r *Repo) toHits(points []*pb.ScoredPoint) ([]hit.Hit, error) {
	hits := make([]hit.Hit, 0, len(points))
	for _, p := range points {
		id, modelJSON, err := identityFromPayload(p.GetPayload())
		if err != nil {
			return nil, fmt.Errorf("scored point: %w", err)
		}
		hits = append(hits, hit.New(id, float64(p.GetScore()), modelJSON))
	}
	return hits, nil
}

func nearestDense(dense []float32) *pb.Query {
	return &pb.Query{
		Variant: &pb.Query_Nearest{
			Nearest: &pb.VectorInput{
				Variant: &pb.VectorInput_Dense{Dense: &pb.DenseVector{Data: dense}},
			},
		},
	}
}

func nearestSparse(sparse domain.SparseVector) *pb.Query {
	return &pb.Query{
		Variant: &pb.Query_Nearest{
			Nearest: &pb.VectorInput{
				Variant: &pb.VectorInput_Sparse{
					Sparse: &pb.SparseVector{Values: sparse.Values, Indices: sparse.Indices},
				},
			},
		},
	}
}

func payloadSelector() *pb.WithPayloadSelector {
	return &pb.WithPayloadSelector{
		SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
	}
}

func ptr[T any](v T) *T { return &v }

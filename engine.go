package recgo

import (
	"context"
	"fmt"

	"github.com/hupe1980/recgo/catalog"
	"github.com/hupe1980/recgo/index"
)

// Engine serves recommendation queries over a loaded catalog snapshot.
//
// It is immutable after construction and safe for concurrent use; create
// one Session per conversation for stateful multi-turn retrieval.
type Engine struct {
	store       *catalog.Store
	productIdx  *index.Flat
	combinedIdx *index.Flat
	logger      *Logger
	metrics     MetricsCollector
}

// New creates an Engine from a catalog store and its two indices.
//
// The store and both indices must agree on row count and order: the
// indices were built from matrices whose row i describes the catalog's
// product i. Any disagreement is a construction error, since proceeding
// would silently attach scores to the wrong products.
func New(store *catalog.Store, productIdx, combinedIdx *index.Flat, optFns ...Option) (*Engine, error) {
	if store == nil || productIdx == nil || combinedIdx == nil {
		return nil, fmt.Errorf("recgo: store and both indices are required")
	}

	if productIdx.Len() != store.Len() {
		return nil, fmt.Errorf("recgo: product index has %d rows, catalog has %d", productIdx.Len(), store.Len())
	}
	if combinedIdx.Len() != store.Len() {
		return nil, fmt.Errorf("recgo: combined index has %d rows, catalog has %d", combinedIdx.Len(), store.Len())
	}

	opts := applyOptions(optFns)

	return &Engine{
		store:       store,
		productIdx:  productIdx,
		combinedIdx: combinedIdx,
		logger:      opts.logger,
		metrics:     opts.metricsCollector,
	}, nil
}

// NewFromSnapshot creates an Engine from a loaded catalog snapshot.
func NewFromSnapshot(snap *catalog.Snapshot, optFns ...Option) (*Engine, error) {
	if snap == nil {
		return nil, fmt.Errorf("recgo: snapshot is required")
	}
	return New(snap.Store, snap.ProductIndex, snap.CombinedIndex, optFns...)
}

// NewSession starts a fresh conversation session.
func (e *Engine) NewSession() *Session {
	return &Session{engine: e}
}

// SimilarProducts returns the k products most similar to the named one,
// ranked by combined product+review vectors. The product itself is
// excluded from the results.
func (e *Engine) SimilarProducts(ctx context.Context, name string, k int) ([]Recommendation, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidK, k)
	}

	row, err := e.store.RowOf(name)
	if err != nil {
		return nil, translateError(err)
	}

	vec, err := e.combinedIdx.Reconstruct(row)
	if err != nil {
		return nil, translateError(err)
	}

	// The product itself is its own nearest neighbor; over-fetch by one
	// and drop it.
	results, err := e.combinedIdx.Search(vec, k+1)
	if err != nil {
		return nil, translateError(err)
	}

	kept := results[:0:0]
	for _, r := range results {
		if r.Row == row {
			continue
		}
		kept = append(kept, r)
	}
	if len(kept) > k {
		kept = kept[:k]
	}

	return e.materialize(kept)
}

// ProductDetails returns the catalog attributes of a product by name.
func (e *Engine) ProductDetails(name string) (catalog.Product, error) {
	p, err := e.store.ByName(name)
	if err != nil {
		return catalog.Product{}, translateError(err)
	}
	return p, nil
}

// EngineStats summarizes the loaded catalog.
type EngineStats struct {
	TotalProducts          int
	IndexDimension         int
	CombinedIndexDimension int
}

// Stats returns basic statistics about the loaded catalog.
func (e *Engine) Stats() EngineStats {
	return EngineStats{
		TotalProducts:          e.store.Len(),
		IndexDimension:         e.productIdx.Dimension(),
		CombinedIndexDimension: e.combinedIdx.Dimension(),
	}
}

// materialize turns index results into Recommendations, converting the
// result set's distances into relative similarity scores.
func (e *Engine) materialize(results []index.SearchResult) ([]Recommendation, error) {
	distances := make([]float32, len(results))
	for i, r := range results {
		distances[i] = r.Distance
	}
	scores := index.SimilarityScores(distances)

	recs := make([]Recommendation, len(results))
	for i, r := range results {
		p, err := e.store.AttributesOf(r.Row)
		if err != nil {
			return nil, translateError(err)
		}
		recs[i] = Recommendation{
			ProductName:  p.Name,
			Score:        scores[i],
			ReviewTitles: p.ReviewTitles,
			ReviewTexts:  p.ReviewTexts,
			ImageRef:     p.ImageRef,
			Rating:       p.Rating,
		}
	}
	return recs, nil
}

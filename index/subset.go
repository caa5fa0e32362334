package index

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/recgo/distance"
)

// Subset is a temporary view over a selection of rows of a Flat index.
//
// Search results carry the original row ids, so callers can keep resolving
// hits against the catalog store without any remapping. A Subset shares the
// parent's storage and stays valid for the parent's lifetime.
type Subset struct {
	parent *Flat
	rows   *roaring.Bitmap
}

var _ Searcher = (*Subset)(nil)

// RestrictTo builds a subset view over the given rows.
// Duplicate rows collapse; any out-of-range row fails with ErrRowNotFound.
func (f *Flat) RestrictTo(rows []int) (*Subset, error) {
	bm := roaring.New()
	for _, row := range rows {
		if row < 0 || row >= f.rows {
			return nil, &ErrRowNotFound{Row: row}
		}
		bm.Add(uint32(row))
	}
	return &Subset{parent: f, rows: bm}, nil
}

// Len returns the number of rows in the subset.
func (s *Subset) Len() int { return int(s.rows.GetCardinality()) }

// Dimension returns the vector dimensionality of the parent index.
func (s *Subset) Dimension() int { return s.parent.dim }

// Contains reports whether the subset includes the given original row id.
func (s *Subset) Contains(row int) bool {
	return row >= 0 && s.rows.ContainsInt(row)
}

// Search performs a brute-force K-nearest-neighbor search over the subset.
// Results carry original row ids, ordered by ascending squared L2 distance.
func (s *Subset) Search(query []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if s.rows.IsEmpty() {
		return nil, ErrEmptyIndex
	}
	if len(query) != s.parent.dim {
		return nil, &ErrDimensionMismatch{Expected: s.parent.dim, Actual: len(query)}
	}

	actualK := min(k, s.Len())
	top := newMaxHeap(actualK)

	it := s.rows.Iterator()
	for it.HasNext() {
		row := int(it.Next())
		top.consider(row, distance.SquaredL2(query, s.parent.row(row)))
	}

	return top.drain(), nil
}

package index

import (
	"container/heap"
	"fmt"

	"github.com/hupe1980/recgo/distance"
)

// Flat is an exact nearest-neighbor index over a fixed embedding matrix.
//
// The matrix is row-major and immutable after construction, so Flat is safe
// for unsynchronized concurrent reads.
type Flat struct {
	dim  int
	rows int
	data []float32 // row-major, rows*dim
}

var _ Searcher = (*Flat)(nil)

// New builds an exact index from a slice of vectors.
// All vectors must share the same length; row ids follow slice order.
func New(vectors [][]float32) (*Flat, error) {
	if len(vectors) == 0 {
		return nil, ErrEmptyIndex
	}

	dim := len(vectors[0])
	if dim == 0 {
		return nil, fmt.Errorf("index: empty vector at row 0")
	}

	data := make([]float32, 0, len(vectors)*dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(v)}
		}
		data = append(data, v...)
	}

	return &Flat{dim: dim, rows: len(vectors), data: data}, nil
}

// NewFromFlat builds an index from a row-major flat buffer, the layout
// produced by the offline embedding artifact.
func NewFromFlat(dim int, data []float32) (*Flat, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("index: invalid dimension %d", dim)
	}
	if len(data)%dim != 0 {
		return nil, fmt.Errorf("index: buffer length %d is not a multiple of dimension %d", len(data), dim)
	}
	return &Flat{dim: dim, rows: len(data) / dim, data: data}, nil
}

// Len returns the number of rows in the index.
func (f *Flat) Len() int { return f.rows }

// Dimension returns the vector dimensionality of the index.
func (f *Flat) Dimension() int { return f.dim }

// row returns a read-only view of the stored vector for a row.
func (f *Flat) row(i int) []float32 {
	return f.data[i*f.dim : (i+1)*f.dim]
}

// Reconstruct returns a copy of the stored vector for the given row.
func (f *Flat) Reconstruct(row int) ([]float32, error) {
	if row < 0 || row >= f.rows {
		return nil, &ErrRowNotFound{Row: row}
	}
	out := make([]float32, f.dim)
	copy(out, f.row(row))
	return out, nil
}

// Search performs a brute-force K-nearest-neighbor search.
// Results are ordered by ascending squared L2 distance; length is
// min(k, Len()).
func (f *Flat) Search(query []float32, k int) ([]SearchResult, error) {
	if k <= 0 {
		return nil, ErrInvalidK
	}
	if f.rows == 0 {
		return nil, ErrEmptyIndex
	}
	if len(query) != f.dim {
		return nil, &ErrDimensionMismatch{Expected: f.dim, Actual: len(query)}
	}

	actualK := min(k, f.rows)
	top := newMaxHeap(actualK)

	for row := 0; row < f.rows; row++ {
		top.consider(row, distance.SquaredL2(query, f.row(row)))
	}

	return top.drain(), nil
}

// maxHeap keeps the k nearest candidates seen so far; the root is the
// current worst candidate so it can be replaced cheaply.
type maxHeap struct {
	cap   int
	items []SearchResult
}

func newMaxHeap(capacity int) *maxHeap {
	h := &maxHeap{cap: capacity, items: make([]SearchResult, 0, capacity)}
	heap.Init(h)
	return h
}

func (h *maxHeap) Len() int           { return len(h.items) }
func (h *maxHeap) Less(i, j int) bool { return h.items[i].Distance > h.items[j].Distance }
func (h *maxHeap) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *maxHeap) Push(x any) {
	h.items = append(h.items, x.(SearchResult))
}

func (h *maxHeap) Pop() any {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

func (h *maxHeap) consider(row int, dist float32) {
	if len(h.items) < h.cap {
		heap.Push(h, SearchResult{Row: row, Distance: dist})
		return
	}
	if dist < h.items[0].Distance {
		heap.Pop(h)
		heap.Push(h, SearchResult{Row: row, Distance: dist})
	}
}

// drain empties the heap into an ascending-distance slice.
func (h *maxHeap) drain() []SearchResult {
	results := make([]SearchResult, len(h.items))
	for i := len(h.items) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(SearchResult)
	}
	return results
}

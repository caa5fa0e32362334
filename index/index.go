package index

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyIndex is returned when a search runs against an index with no
	// vectors loaded.
	ErrEmptyIndex = errors.New("index: no vectors loaded")

	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("index: k must be positive")
)

// ErrDimensionMismatch indicates a vector/query dimensionality mismatch.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrRowNotFound indicates a row id outside the index.
type ErrRowNotFound struct {
	Row int
}

func (e *ErrRowNotFound) Error() string {
	return fmt.Sprintf("row %d not found", e.Row)
}

// SearchResult represents a single search hit.
type SearchResult struct {
	// Row is the 0-based row id of the hit, shared with the catalog store.
	Row int

	// Distance is the squared L2 distance between the query and the row.
	Distance float32
}

// Searcher is the read surface shared by the full index and subset views.
type Searcher interface {
	Search(query []float32, k int) ([]SearchResult, error)
	Len() int
	Dimension() int
}

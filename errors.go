package recgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recgo/catalog"
	"github.com/hupe1980/recgo/index"
)

var (
	// ErrInvalidK is returned when a result count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidBufferSize is returned when the candidate buffer would be
	// smaller than the number of results to display.
	ErrInvalidBufferSize = errors.New("buffer size must be at least the display count")

	// ErrNoBuffer is returned by Rerank on a session that has not run a
	// search yet, so there is no candidate pool to refine.
	ErrNoBuffer = errors.New("no candidate buffer: run a search first")

	// ErrNotFound is returned when a product cannot be resolved.
	ErrNotFound = errors.New("product not found")
)

// ErrDimensionMismatch indicates a query/index dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, catalog.ErrUnknownProduct) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var rnf *index.ErrRowNotFound
	if errors.As(err, &rnf) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var crnf *catalog.ErrRowNotFound
	if errors.As(err, &crnf) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Dimension and argument normalization.
	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	if errors.Is(err, index.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}

	return err
}

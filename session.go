package recgo

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/hupe1980/recgo/distance"
)

// Recommendation is one ranked product surfaced to the user.
//
// Score is the similarity under the turn that produced it: result-set
// relative (0..1) for a first-turn search, cosine for a rerank. Scores
// from different turns are not comparable.
type Recommendation struct {
	ProductName  string
	Score        float32
	ReviewTitles []string
	ReviewTexts  []string
	ImageRef     string
	Rating       float64
}

// SessionState is the conversation state of a Session.
type SessionState int

const (
	// StateFresh means no search has run yet; there is nothing to refine.
	StateFresh SessionState = iota

	// StateBuffered means a candidate pool has been captured and
	// follow-up turns rerank within it.
	StateBuffered
)

// Session carries one conversation's retrieval state.
//
// A Session is not safe for concurrent use; it belongs to exactly one
// conversation.
type Session struct {
	engine *Engine
	state  SessionState
	buffer []Recommendation
}

// State returns the session's conversation state.
func (s *Session) State() SessionState {
	return s.state
}

// Buffer returns a copy of the captured candidate pool.
func (s *Session) Buffer() []Recommendation {
	return slices.Clone(s.buffer)
}

// Reset drops the candidate pool and returns the session to Fresh.
func (s *Session) Reset() {
	s.state = StateFresh
	s.buffer = nil
}

// Search runs a first-turn (or restart) query against the product index.
//
// It retrieves the bufferK nearest products, captures them as the
// session's candidate pool, and returns the top displayK by similarity.
// Calling Search on a Buffered session replaces the pool wholesale; use
// it when the user changes topic rather than refines.
func (s *Session) Search(ctx context.Context, query []float32, displayK, bufferK int) ([]Recommendation, error) {
	start := time.Now()

	recs, err := s.search(query, displayK, bufferK)

	s.engine.metrics.RecordSearch(bufferK, time.Since(start), err)
	s.engine.logger.LogSearch(ctx, bufferK, len(recs), err)

	return recs, err
}

func (s *Session) search(query []float32, displayK, bufferK int) ([]Recommendation, error) {
	if displayK < 1 {
		return nil, fmt.Errorf("%w: display count %d", ErrInvalidK, displayK)
	}
	if bufferK < displayK {
		return nil, fmt.Errorf("%w: buffer %d, display %d", ErrInvalidBufferSize, bufferK, displayK)
	}

	results, err := s.engine.productIdx.Search(query, bufferK)
	if err != nil {
		return nil, translateError(err)
	}

	buffer, err := s.engine.materialize(results)
	if err != nil {
		return nil, err
	}

	s.buffer = buffer
	s.state = StateBuffered

	return slices.Clone(buffer[:min(displayK, len(buffer))]), nil
}

// Rerank refines the captured candidate pool against a follow-up query.
//
// Each buffered candidate's combined product+review vector is re-scored
// by cosine similarity with the follow-up embedding; no index search
// runs and no product outside the pool can appear. The pool itself is
// unchanged, so repeated reranks are independent refinements: each
// follow-up is scored against the same candidates regardless of what
// came before.
//
// Candidates that can no longer be resolved are dropped with a warning
// rather than aborting the turn. If nothing is resolvable, the pool is
// returned unrescored, truncated to displayK.
func (s *Session) Rerank(ctx context.Context, followup []float32, displayK int) ([]Recommendation, error) {
	start := time.Now()

	recs, dropped, err := s.rerank(ctx, followup, displayK)

	s.engine.metrics.RecordRerank(len(s.buffer), dropped, time.Since(start), err)
	s.engine.logger.LogRerank(ctx, len(s.buffer), dropped, err)

	return recs, err
}

func (s *Session) rerank(ctx context.Context, followup []float32, displayK int) ([]Recommendation, int, error) {
	if s.state != StateBuffered {
		return nil, 0, ErrNoBuffer
	}
	if displayK < 1 {
		return nil, 0, fmt.Errorf("%w: display count %d", ErrInvalidK, displayK)
	}
	if dim := s.engine.combinedIdx.Dimension(); len(followup) != dim {
		return nil, 0, &ErrDimensionMismatch{Expected: dim, Actual: len(followup)}
	}

	var dropped int
	rescored := make([]Recommendation, 0, len(s.buffer))
	for _, cand := range s.buffer {
		vec, err := s.candidateVector(cand.ProductName)
		if err != nil {
			dropped++
			s.engine.logger.WarnContext(ctx, "rerank candidate dropped",
				"product", cand.ProductName,
				"error", err,
			)
			continue
		}

		cand.Score = distance.Cosine(followup, vec)
		rescored = append(rescored, cand)
	}

	if len(rescored) == 0 {
		return slices.Clone(s.buffer[:min(displayK, len(s.buffer))]), dropped, nil
	}

	sort.SliceStable(rescored, func(i, j int) bool {
		return rescored[i].Score > rescored[j].Score
	})

	return rescored[:min(displayK, len(rescored))], dropped, nil
}

// candidateVector resolves a buffered candidate back to its combined
// index vector.
func (s *Session) candidateVector(name string) ([]float32, error) {
	row, err := s.engine.store.RowOf(name)
	if err != nil {
		return nil, translateError(err)
	}

	vec, err := s.engine.combinedIdx.Reconstruct(row)
	if err != nil {
		return nil, translateError(err)
	}
	return vec, nil
}

package recgo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/recgo/cache"
)

// ProductReviews is the input handed to a Summarizer collaborator.
type ProductReviews struct {
	ProductName  string
	ReviewTitles []string
	ReviewTexts  []string
}

// Summarizer generates a review summary for one product. Implementations
// typically call an external model and are assumed to be expensive.
type Summarizer interface {
	Summarize(ctx context.Context, pr ProductReviews) (string, error)
}

// SummarizerFunc adapts a function to the Summarizer interface.
type SummarizerFunc func(ctx context.Context, pr ProductReviews) (string, error)

// Summarize implements Summarizer.
func (f SummarizerFunc) Summarize(ctx context.Context, pr ProductReviews) (string, error) {
	return f(ctx, pr)
}

// SummaryServiceOptions contains configuration options for SummaryService.
type SummaryServiceOptions struct {
	// Logger receives per-candidate warnings. Defaults to Noop.
	Logger *Logger

	// MetricsCollector observes summary and cache outcomes.
	MetricsCollector MetricsCollector

	// MaxConcurrency bounds parallel collaborator calls in SummarizeAll.
	MaxConcurrency int

	// RateLimit throttles collaborator calls. Defaults to unlimited.
	RateLimit rate.Limit

	// RateBurst is the limiter burst size.
	RateBurst int
}

// SummaryService generates review summaries through a collaborator,
// fronted by the durable cache and throttled toward the collaborator.
//
// The cache is an optimization only: cache IO failures degrade to misses
// and never fail a summary request.
type SummaryService struct {
	cache      *cache.Cache
	summarizer Summarizer
	limiter    *rate.Limiter
	maxWorkers int
	logger     *Logger
	metrics    MetricsCollector
}

// NewSummaryService creates a SummaryService. The cache may be nil to
// disable caching entirely.
func NewSummaryService(c *cache.Cache, summarizer Summarizer, optFns ...func(o *SummaryServiceOptions)) (*SummaryService, error) {
	if summarizer == nil {
		return nil, fmt.Errorf("recgo: summarizer is required")
	}

	opts := SummaryServiceOptions{
		Logger:           NoopLogger(),
		MetricsCollector: NoopMetricsCollector{},
		MaxConcurrency:   4,
		RateLimit:        rate.Inf,
		RateBurst:        1,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}

	return &SummaryService{
		cache:      c,
		summarizer: summarizer,
		limiter:    rate.NewLimiter(opts.RateLimit, opts.RateBurst),
		maxWorkers: opts.MaxConcurrency,
		logger:     opts.Logger,
		metrics:    opts.MetricsCollector,
	}, nil
}

// Summarize returns the summary for one product, serving from the cache
// when possible and persisting fresh results back into it.
func (s *SummaryService) Summarize(ctx context.Context, pr ProductReviews) (string, error) {
	if s.cache != nil {
		if summary, ok := s.cache.Get(pr.ProductName); ok {
			s.metrics.RecordCacheHit()
			s.logger.LogSummary(ctx, pr.ProductName, true, nil)
			return summary, nil
		}
		s.metrics.RecordCacheMiss()
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	summary, err := s.summarizer.Summarize(ctx, pr)
	s.metrics.RecordSummary(time.Since(start), err)
	s.logger.LogSummary(ctx, pr.ProductName, false, err)
	if err != nil {
		return "", fmt.Errorf("recgo: summarize %q: %w", pr.ProductName, err)
	}

	if s.cache != nil {
		// Persist failures already degrade inside the cache; the summary
		// itself is still good.
		_ = s.cache.Put(pr.ProductName, summary)
	}

	return summary, nil
}

// SummarizeAll generates summaries for a result set with bounded
// concurrency and returns them keyed by product name.
//
// Per-candidate collaborator failures are logged and skipped, so a flaky
// collaborator yields a partial map rather than an error. Context
// cancellation aborts the batch.
func (s *SummaryService) SummarizeAll(ctx context.Context, recs []Recommendation) (map[string]string, error) {
	out := make(map[string]string, len(recs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for _, rec := range recs {
		rec := rec
		g.Go(func() error {
			summary, err := s.Summarize(ctx, ProductReviews{
				ProductName:  rec.ProductName,
				ReviewTitles: rec.ReviewTitles,
				ReviewTexts:  rec.ReviewTexts,
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.logger.WarnContext(ctx, "summary skipped",
					"product", rec.ProductName,
					"error", err,
				)
				return nil
			}

			mu.Lock()
			out[rec.ProductName] = summary
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return out, err
	}
	return out, nil
}

// EvictStale removes cache entries whose last access predates the
// retention window. It is a no-op without a cache.
func (s *SummaryService) EvictStale(ctx context.Context, window time.Duration) int {
	if s.cache == nil {
		return 0
	}

	removed := s.cache.EvictOlderThan(window)
	s.metrics.RecordCacheEvict(removed)
	s.logger.LogEviction(ctx, removed)
	return removed
}

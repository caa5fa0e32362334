package recgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    searchCounter   prometheus.Counter
//	    rerankHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSearch(k int, duration time.Duration, err error) {
//	    p.searchCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSearch is called after each first-turn search.
	// k is the candidate buffer size requested, err is nil if successful.
	RecordSearch(k int, duration time.Duration, err error)

	// RecordRerank is called after each follow-up rerank.
	// candidates is the buffer size, dropped is the number of candidates
	// that failed resolution or reconstruction.
	RecordRerank(candidates, dropped int, duration time.Duration, err error)

	// RecordSummary is called after each collaborator summary generation.
	RecordSummary(duration time.Duration, err error)

	// RecordCacheHit is called when a summary is served from the cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a summary is absent from the cache.
	RecordCacheMiss()

	// RecordCacheEvict is called after a retention sweep.
	RecordCacheEvict(removed int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSearch(int, time.Duration, error)      {}
func (NoopMetricsCollector) RecordRerank(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSummary(time.Duration, error)          {}
func (NoopMetricsCollector) RecordCacheHit()                             {}
func (NoopMetricsCollector) RecordCacheMiss()                            {}
func (NoopMetricsCollector) RecordCacheEvict(int)                        {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SearchCount      atomic.Int64
	SearchErrors     atomic.Int64
	SearchTotalNanos atomic.Int64
	RerankCount      atomic.Int64
	RerankErrors     atomic.Int64
	RerankDropped    atomic.Int64
	SummaryCount     atomic.Int64
	SummaryErrors    atomic.Int64
	CacheHits        atomic.Int64
	CacheMisses      atomic.Int64
	CacheEvicted     atomic.Int64
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(k int, duration time.Duration, err error) {
	b.SearchCount.Add(1)
	b.SearchTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SearchErrors.Add(1)
	}
}

// RecordRerank implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRerank(candidates, dropped int, duration time.Duration, err error) {
	b.RerankCount.Add(1)
	b.RerankDropped.Add(int64(dropped))
	if err != nil {
		b.RerankErrors.Add(1)
	}
}

// RecordSummary implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSummary(duration time.Duration, err error) {
	b.SummaryCount.Add(1)
	if err != nil {
		b.SummaryErrors.Add(1)
	}
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() {
	b.CacheHits.Add(1)
}

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss() {
	b.CacheMisses.Add(1)
}

// RecordCacheEvict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheEvict(removed int) {
	b.CacheEvicted.Add(int64(removed))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SearchCount:    b.SearchCount.Load(),
		SearchErrors:   b.SearchErrors.Load(),
		SearchAvgNanos: b.getAvgSearchNanos(),
		RerankCount:    b.RerankCount.Load(),
		RerankErrors:   b.RerankErrors.Load(),
		RerankDropped:  b.RerankDropped.Load(),
		SummaryCount:   b.SummaryCount.Load(),
		SummaryErrors:  b.SummaryErrors.Load(),
		CacheHits:      b.CacheHits.Load(),
		CacheMisses:    b.CacheMisses.Load(),
		CacheEvicted:   b.CacheEvicted.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSearchNanos() int64 {
	count := b.SearchCount.Load()
	if count == 0 {
		return 0
	}
	return b.SearchTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SearchCount    int64
	SearchErrors   int64
	SearchAvgNanos int64
	RerankCount    int64
	RerankErrors   int64
	RerankDropped  int64
	SummaryCount   int64
	SummaryErrors  int64
	CacheHits      int64
	CacheMisses    int64
	CacheEvicted   int64
}

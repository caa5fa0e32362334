package cache

import (
	"crypto/md5" //nolint:gosec // content addressing, not security
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Entry is one cached summary as stored in the snapshot.
type Entry struct {
	ProductName  string `json:"product_name"`
	Summary      string `json:"summary"`
	CreatedAt    string `json:"created_at"`
	LastAccessed string `json:"last_accessed"`
}

// Options contains configuration options for the cache.
type Options struct {
	// Logger receives warnings about degraded IO. Defaults to discard.
	Logger *slog.Logger

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Cache is a durable mapping from product identity to a generated summary.
//
// It is the single shared mutable state of the system and is safe for
// concurrent use within one process; concurrent writers across processes
// are out of scope (single-writer assumption).
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]*Entry
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a cache backed by the JSON snapshot at path.
//
// A missing snapshot starts empty. An unreadable or corrupt snapshot falls
// back to its ".bak" recovery copy, and failing that starts empty with a
// logged warning; load problems never fail construction.
func New(path string, optFns ...func(o *Options)) *Cache {
	opts := Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:    time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
		logger:  opts.Logger,
		now:     opts.Now,
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			c.logger.Warn("cache directory unavailable, running in-memory only",
				"dir", dir, "error", err)
		}
	}

	c.load()
	return c
}

// KeyFor derives the content-addressed key for a product name.
// Names differing only in case or surrounding whitespace share a key.
func KeyFor(productName string) string {
	clean := strings.ToLower(strings.TrimSpace(productName))
	sum := md5.Sum([]byte(clean)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// Get returns the cached summary for a product, if present.
// A hit refreshes the entry's last-accessed time.
func (c *Cache) Get(productName string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[KeyFor(productName)]
	if !ok {
		return "", false
	}

	e.LastAccessed = c.timestamp()
	return e.Summary, true
}

// Put upserts a summary and persists the snapshot atomically.
//
// CreatedAt is set on first insert only; LastAccessed is always refreshed.
// A persist failure is logged and returned, but the in-memory entry stays
// valid, so the enclosing flow keeps working.
func (c *Cache) Put(productName, summary string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := KeyFor(productName)
	now := c.timestamp()

	if e, ok := c.entries[key]; ok {
		e.ProductName = productName
		e.Summary = summary
		e.LastAccessed = now
	} else {
		c.entries[key] = &Entry{
			ProductName:  productName,
			Summary:      summary,
			CreatedAt:    now,
			LastAccessed: now,
		}
	}

	if err := c.persistLocked(); err != nil {
		c.logger.Warn("cache persist failed", "path", c.path, "error", err)
		return err
	}
	return nil
}

// EvictOlderThan removes entries whose last access predates the retention
// window and returns the number removed. Entries with unparseable or
// missing timestamps are treated as maximally old.
func (c *Cache) EvictOlderThan(window time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := c.now().Add(-window)

	var removed int
	for key, e := range c.entries {
		ts, err := parseTimestamp(e.LastAccessed)
		if err != nil || ts.Before(cutoff) {
			delete(c.entries, key)
			removed++
		}
	}

	if removed > 0 {
		if err := c.persistLocked(); err != nil {
			c.logger.Warn("cache persist after eviction failed", "path", c.path, "error", err)
		}
	}
	return removed
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats describes the cache's durable state.
type Stats struct {
	Entries       int
	FileSizeBytes int64
	FileExists    bool
}

// Stats returns a snapshot of cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := Stats{Entries: len(c.entries)}
	if info, err := os.Stat(c.path); err == nil {
		stats.FileExists = true
		stats.FileSizeBytes = info.Size()
	}
	return stats
}

// Clear drops all entries and removes the snapshot and its recovery copy.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("cache snapshot removal failed", "path", c.path, "error", err)
	}
	_ = os.Remove(c.backupPath())
}

func (c *Cache) timestamp() string {
	return c.now().UTC().Format(time.RFC3339Nano)
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}

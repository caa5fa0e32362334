// Package cache provides the durable product-summary cache.
//
// Summaries are expensive to generate, so they are cached across process
// restarts in a single JSON snapshot keyed by a content-addressed product
// key (md5 of the lowercased, trimmed product name, so cosmetic name
// variations collide to the same entry).
//
// # Durability
//
// Every persist writes the full snapshot to a temp file in the cache
// directory, links the prior snapshot to a ".bak" recovery fallback, then
// atomically renames the temp file over the durable path. A reader can
// therefore never observe a torn file, and a crash mid-persist leaves
// either the old or the new contents readable. The loader falls back to
// the ".bak" snapshot when the primary is missing or unparseable.
//
// # Failure Policy
//
// The cache is a performance optimization, never a correctness dependency:
// all store IO failures degrade to cache-miss behavior and are logged,
// never propagated as hard failures of the surrounding recommendation
// flow.
package cache

// Package index provides an exact nearest-neighbor index over fixed-dimension
// float32 vectors.
//
// The index is built once from an embedding matrix produced by an offline
// pipeline and is immutable afterwards. Search is brute-force over squared
// Euclidean distance, which gives 100% recall at catalog sizes of a few
// thousand rows.
//
// Row ids are dense 0-based integers assigned by matrix order. They are the
// contract with the catalog store: row i of the index corresponds to row i
// of the catalog snapshot.
//
// # Operations
//
//   - Search: ascending-distance top-k over the full index
//   - Reconstruct: recover a stored vector by row id
//   - RestrictTo: a subset view over selected rows, used to rerank a fixed
//     candidate pool without scanning the full index
//
// # Scoring
//
// SimilarityScores converts a result set's distances into relative
// similarity scores in [0, 1]. The scores are only comparable within a
// single result set; see its documentation.
package index

// Package distance provides float32 vector distance calculations.
//
// # Supported Operations
//
//   - Dot: dot product (inner product)
//   - SquaredL2: squared Euclidean distance
//   - Cosine: cosine similarity
//   - NormalizeL2InPlace / NormalizeL2Copy: L2 normalization
//
// All pairwise functions assume both vectors have the same length; dimension
// validation is the caller's responsibility (the index package enforces it
// at its boundaries).
package distance

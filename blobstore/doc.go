// Package blobstore provides read access to the immutable catalog artifacts
// produced by the offline pipeline (metadata snapshot and embedding
// matrices).
//
// BlobStore is the interface for opening a named artifact as a stream.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem directory
//   - MemoryStore: in-memory store for tests
//   - minio.Store: MinIO and S3-compatible object storage
//   - s3.Store: Amazon S3
//
// # Compression
//
// Artifacts may be stored compressed. OpenDecoded wraps an artifact stream
// with transparent decompression selected by file extension (.zst, .lz4).
package blobstore

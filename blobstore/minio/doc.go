// Package minio implements blobstore.BlobStore for MinIO and S3-compatible
// object storage, used to fetch catalog artifacts at process start.
package minio

// Package s3 implements blobstore.BlobStore for Amazon S3, used to fetch
// catalog artifacts at process start. Downloads use the transfer manager
// for parallel range reads, which matters for the embedding matrices.
package s3

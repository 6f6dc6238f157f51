// Package blobstore provides read access to the resources hups loads:
// digital-net parameter files and precomputed generator tables.
//
// BlobStore is the interface every backend implements. Implementations must
// be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with mmap support
//   - MemoryStore: in-process blobs, for tests and embedded resources
//   - HTTPStore: http(s) URLs with an optional IO rate limit
//   - CachingStore: keeps whole payloads of another store in an LRU
//   - s3.Store: Amazon S3 (package blobstore/s3)
//   - minio.Store: MinIO and other S3-compatible services (package blobstore/minio)
//
// Resources may be stored compressed; Decompress inflates .zst and .lz4
// payloads by name.
package blobstore

package repository

import (
	"context"
	"io"
	"time"
)

// ListOptions narrows an object listing.
type ListOptions struct {
	Prefix            string
	MaxKeys           int
	ContinuationToken string
}

// ListResult is one page of an object listing. Truncation and continuation
// pass through the underlying gateway's pagination signal unmodified.
type ListResult struct {
	Objects               []ObjectInfo
	IsTruncated           bool
	NextContinuationToken string
}

// ObjectStorage defines the interface for the S3-compatible object store
// gateway (MinIO, R2). Implementations live in the infrastructure layer.
type ObjectStorage interface {
	// List returns one page of objects under the given prefix.
	// Gateway failures are reported as ErrUpstreamUnavailable.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// GeneratePresignedUploadURL creates a presigned URL for direct client upload.
	GeneratePresignedUploadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a presigned URL for reading an object.
	GeneratePresignedDownloadURL(ctx context.Context, key string, expiry time.Duration) (string, error)

	// Upload stores an object.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Download retrieves an object.
	// Caller is responsible for closing the returned ReadCloser.
	// Returns ErrObjectNotFound if the key does not exist.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes an object.
	Delete(ctx context.Context, key string) error
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
}
